// Package anvil stores Minecraft chunks in Anvil region files.
//
// A world's chunks are grouped into regions of 32×32 chunks, one file per region
// named r.<x>.<z>.mca. Each file starts with an 8 KiB header (a location table and
// a timestamp table, 1024 entries each) followed by 4 KiB sectors holding the
// compressed NBT document of every stored chunk.
//
// # Core Features
//
//   - Bit-exact region layout, interoperable with other Anvil readers and writers
//   - GZip, ZLib, LZ4 and uncompressed payloads; reads honor the stored scheme
//   - First-fit sector allocation with in-place reuse of large enough runs
//   - Palette-compressed block-state sections (4..32 bits per index)
//   - Per-region read/write locking and coalesced concurrent reads
//   - Portable chunk archives (package archive) for backup and migration
//
// # Basic Usage
//
//	st, err := anvil.Open("world/region")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	pos := anvil.ChunkPos{X: -1, Z: -1} // region r.-1.-1.mca, local index 1023
//	c, err := st.LoadChunk(pos)
//	if errors.Is(err, errs.ErrChunkNotExist) {
//	    c = anvil.NewChunk(pos) // generate instead
//	}
//
//	stone := st.Registry().ID(anvil.NewBlockState("minecraft:stone"))
//	c.SetBlock(0, 64, 0, stone)
//	err = st.SaveChunk(pos, c)
//
// # Package Structure
//
// This package wraps the store package for the common case. The layers below it
// can be used directly:
//
//   - store: ChunkStore, the load/save engine
//   - chunk: in-memory chunks and their NBT documents
//   - region: region file sessions, headers and the sector allocator
//   - block: block states and the interning registry
//   - encoding: the palette codec
//   - compress: payload and archive codecs
//   - archive: chunk archive streams
package anvil

import (
	"log/slog"

	"github.com/arloliu/anvil/block"
	"github.com/arloliu/anvil/chunk"
	"github.com/arloliu/anvil/internal/logger"
	"github.com/arloliu/anvil/region"
	"github.com/arloliu/anvil/store"
)

type (
	// ChunkPos is a world-absolute chunk coordinate.
	ChunkPos = region.ChunkPos
	// RegionPos is the coordinate of a region file.
	RegionPos = region.RegionPos
	// Chunk is a decoded chunk.
	Chunk = chunk.Chunk
	// BlockState is a block name with its properties.
	BlockState = block.BlockState
	// Logger is the structured logger accepted by store.WithLogger.
	Logger = logger.Logger
)

// Open creates a chunk store over the region files in dir.
//
// Writes use ZLib at level 6 unless configured otherwise; the directory is
// created by the first write.
//
// Parameters:
//   - dir: The region directory, usually <world>/region
//   - opts: Optional configuration (see store.Option)
//
// Returns:
//   - *store.ChunkStore: The store
//   - error: ErrInvalidOption if an option is invalid
//
// Example:
//
//	st, err := anvil.Open("world/region",
//	    store.WithCompression(format.CompressionLZ4),
//	    store.WithLogger(anvil.NewLogger(slog.NewTextHandler(os.Stderr, nil))),
//	)
func Open(dir string, opts ...store.Option) (*store.ChunkStore, error) {
	return store.New(dir, opts...)
}

// NewChunk creates an empty, fully generated chunk at pos.
func NewChunk(pos ChunkPos) *Chunk {
	return chunk.New(pos)
}

// NewBlockState creates a block state from a name and alternating property keys
// and values.
func NewBlockState(name string, kv ...string) BlockState {
	return block.NewBlockState(name, kv...)
}

// NewRegistry creates a block-state registry that can be shared by several
// stores through store.WithRegistry.
func NewRegistry() *block.InternRegistry {
	return block.NewInternRegistry()
}

// NewLogger creates a Logger writing to an slog handler.
func NewLogger(handler slog.Handler) Logger {
	return logger.New(handler)
}
