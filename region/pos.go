package region

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arloliu/anvil/errs"
)

// ChunkPos is a world-absolute chunk coordinate.
type ChunkPos struct {
	X, Z int32
}

// RegionPos is the coordinate of a region file.
type RegionPos struct {
	X, Z int32
}

// Region returns the region containing the chunk. The arithmetic shift floors
// negative coordinates, so chunk -1 lives in region -1.
func (p ChunkPos) Region() RegionPos {
	return RegionPos{X: p.X >> 5, Z: p.Z >> 5}
}

// LocalIndex returns the chunk's slot in its region's tables, in [0, 1024).
func (p ChunkPos) LocalIndex() int {
	return int(p.X&31) + int(p.Z&31)*Width
}

// String implements fmt.Stringer.
func (p ChunkPos) String() string {
	return fmt.Sprintf("chunk(%d, %d)", p.X, p.Z)
}

// Chunk returns the world position of the chunk at a local index of the region.
func (r RegionPos) Chunk(index int) ChunkPos {
	return ChunkPos{
		X: r.X*Width + int32(index%Width),
		Z: r.Z*Width + int32(index/Width),
	}
}

// FileName returns the region's file name, r.<x>.<z>.mca.
func (r RegionPos) FileName() string {
	return "r." + strconv.FormatInt(int64(r.X), 10) + "." + strconv.FormatInt(int64(r.Z), 10) + FileExtension
}

// String implements fmt.Stringer.
func (r RegionPos) String() string {
	return fmt.Sprintf("region(%d, %d)", r.X, r.Z)
}

// FileName returns the file name of the region at pos.
func FileName(pos RegionPos) string {
	return pos.FileName()
}

// ParseFileName parses a region file name of the form r.<x>.<z>.mca.
//
// Returns:
//   - RegionPos: The parsed region coordinate
//   - error: ErrInvalidRegionName if the name does not match the pattern
func ParseFileName(name string) (RegionPos, error) {
	rest, ok := strings.CutPrefix(name, "r.")
	if !ok {
		return RegionPos{}, fmt.Errorf("%w: %q", errs.ErrInvalidRegionName, name)
	}
	rest, ok = strings.CutSuffix(rest, FileExtension)
	if !ok {
		return RegionPos{}, fmt.Errorf("%w: %q", errs.ErrInvalidRegionName, name)
	}

	xs, zs, ok := strings.Cut(rest, ".")
	if !ok {
		return RegionPos{}, fmt.Errorf("%w: %q", errs.ErrInvalidRegionName, name)
	}

	x, err := strconv.ParseInt(xs, 10, 32)
	if err != nil {
		return RegionPos{}, fmt.Errorf("%w: %q: %w", errs.ErrInvalidRegionName, name, err)
	}
	z, err := strconv.ParseInt(zs, 10, 32)
	if err != nil {
		return RegionPos{}, fmt.Errorf("%w: %q: %w", errs.ErrInvalidRegionName, name, err)
	}

	return RegionPos{X: int32(x), Z: int32(z)}, nil
}
