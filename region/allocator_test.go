package region

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func tableWith(runs ...LocationEntry) *LocationTable {
	var table LocationTable
	for i, r := range runs {
		table[i*37%EntryCount] = r
	}

	return &table
}

func TestFindFreeSector(t *testing.T) {
	tests := []struct {
		name     string
		table    *LocationTable
		n        int
		expected uint32
	}{
		{name: "empty table", table: tableWith(), n: 1, expected: 2},
		{name: "empty table large run", table: tableWith(), n: 40, expected: 2},
		{
			name:     "gap fits",
			table:    tableWith(LocationEntry{Offset: 2, Sectors: 3}, LocationEntry{Offset: 8, Sectors: 2}),
			n:        3,
			expected: 5,
		},
		{
			name:     "gap too small",
			table:    tableWith(LocationEntry{Offset: 2, Sectors: 3}, LocationEntry{Offset: 8, Sectors: 2}),
			n:        5,
			expected: 10,
		},
		{
			name:     "gap before first run",
			table:    tableWith(LocationEntry{Offset: 6, Sectors: 1}),
			n:        4,
			expected: 2,
		},
		{
			name:     "gap before first run too small",
			table:    tableWith(LocationEntry{Offset: 6, Sectors: 1}),
			n:        5,
			expected: 7,
		},
		{
			name: "first fit not best fit",
			table: tableWith(
				LocationEntry{Offset: 2, Sectors: 1},
				LocationEntry{Offset: 8, Sectors: 1},  // gap [3,8) of 5
				LocationEntry{Offset: 11, Sectors: 1}, // gap [9,11) of 2
			),
			n:        2,
			expected: 3,
		},
		{
			name:     "contiguous runs",
			table:    tableWith(LocationEntry{Offset: 2, Sectors: 2}, LocationEntry{Offset: 4, Sectors: 3}),
			n:        1,
			expected: 7,
		},
		{
			name:     "overlapping runs",
			table:    tableWith(LocationEntry{Offset: 2, Sectors: 4}, LocationEntry{Offset: 3, Sectors: 1}),
			n:        1,
			expected: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, FindFreeSector(tt.table, tt.n))
		})
	}
}

func TestFindFreeSector_NeverOverlaps(t *testing.T) {
	var table LocationTable
	for i := range 200 {
		n := i%5 + 1
		s := FindFreeSector(&table, n)
		require.GreaterOrEqual(t, s, uint32(FirstDataSector))

		for _, e := range table {
			if e.IsEmpty() {
				continue
			}
			require.True(t, s+uint32(n) <= e.Offset || s >= e.End(), "run [%d,%d) overlaps [%d,%d)", s, s+uint32(n), e.Offset, e.End())
		}
		table[i] = LocationEntry{Offset: s, Sectors: uint8(n)}

		// free every third run to leave holes
		if i%3 == 0 && i > 0 {
			table[i-1] = LocationEntry{}
		}
	}
}
