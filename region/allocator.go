package region

import "slices"

// FindFreeSector returns the lowest sector s >= FirstDataSector such that the
// run [s, s+n) overlaps no run in the table. Placement is first-fit by address;
// when no gap between runs is large enough the run is placed past the highest
// occupied sector.
//
// The header sectors 0 and 1 count as occupied, so a gap between the header and
// the first payload is eligible like any other.
//
// The caller checks the in-place fast path (existing run already large enough)
// before calling FindFreeSector.
func FindFreeSector(table *LocationTable, n int) uint32 {
	occupied := make([]uint32, 0, 2*EntryCount)
	occupied = append(occupied, 0, 1)
	for _, e := range table {
		if e.IsEmpty() {
			continue
		}
		for s := e.Offset; s < e.End(); s++ {
			occupied = append(occupied, s)
		}
	}

	slices.Sort(occupied)
	occupied = slices.Compact(occupied)

	for i := 1; i < len(occupied); i++ {
		a, b := occupied[i-1], occupied[i]
		if b-a > uint32(n) {
			return a + 1
		}
	}

	return occupied[len(occupied)-1] + 1
}
