package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetInt64Slice(t *testing.T) {
	t.Run("returns slice with correct size", func(t *testing.T) {
		slice, cleanup := GetInt64Slice(342)
		defer cleanup()

		require.Len(t, slice, 342)
		require.GreaterOrEqual(t, cap(slice), 342)
	})

	t.Run("allocates new slice when capacity insufficient", func(t *testing.T) {
		_, cleanup1 := GetInt64Slice(10)
		cleanup1()

		slice2, cleanup2 := GetInt64Slice(1000)
		defer cleanup2()

		require.Len(t, slice2, 1000)
	})

	t.Run("widest section fits default capacity", func(t *testing.T) {
		slice, cleanup := GetInt64Slice(SectionWordsDefaultSize)
		defer cleanup()

		require.Len(t, slice, SectionWordsDefaultSize)
	})

	t.Run("oversized slice is not pooled", func(t *testing.T) {
		big, cleanup := GetInt64Slice(SectionWordsMaxThreshold + 1)
		cleanup()

		for range 8 {
			s, release := GetInt64Slice(1)
			require.NotSame(t, &big[0], &s[0])
			release()
		}
	})

	t.Run("zero size", func(t *testing.T) {
		slice, cleanup := GetInt64Slice(0)
		defer cleanup()

		require.Empty(t, slice)
	})
}

func TestGetInt64Slice_Concurrency(t *testing.T) {
	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			size := 256 + i
			slice, cleanup := GetInt64Slice(size)
			defer cleanup()
			for j := range slice {
				slice[j] = int64(i)
			}
			for _, v := range slice {
				if v != int64(i) {
					t.Errorf("slice shared between goroutines")
					return
				}
			}
		}()
	}
	wg.Wait()
}
