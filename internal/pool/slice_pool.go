package pool

import "sync"

const (
	// SectionWordsDefaultSize holds the packed block_states data of a section with
	// a full 4096-entry palette: 12-bit indices, five per word.
	SectionWordsDefaultSize = 4096/5 + 1
	// SectionWordsMaxThreshold keeps slices grown for unusual callers out of the pool.
	SectionWordsMaxThreshold = 4096
)

var sectionWordsPool = sync.Pool{
	New: func() any {
		s := make([]int64, 0, SectionWordsDefaultSize)
		return &s
	},
}

// GetInt64Slice returns a pooled slice of exactly size words for a section's
// packed block_states data, and a release func that hands it back.
//
// The slice must not be used after release. Marshal keeps every section's
// slice until the document is encoded, then releases them together:
//
//	data, release := pool.GetInt64Slice(len(words))
//	defer release()
func GetInt64Slice(size int) ([]int64, func()) {
	ptr, _ := sectionWordsPool.Get().(*[]int64)
	s := (*ptr)[:0]

	if cap(s) < size {
		s = make([]int64, size)
	} else {
		s = s[:size]
	}
	*ptr = s

	return s, func() {
		if cap(*ptr) <= SectionWordsMaxThreshold {
			sectionWordsPool.Put(ptr)
		}
	}
}
