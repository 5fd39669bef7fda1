// Package chunk converts between in-memory chunks and their NBT documents.
//
// A chunk is a 16-block-wide column split into 24 sections of 16×16×16 blocks,
// from section Y -4 (blocks -64..-49) to section Y 19 (blocks 304..319). Each
// section stores one block.StateID per block; Marshal palette-encodes every
// present section and Unmarshal reverses it through a block.Registry.
package chunk

import (
	"github.com/Tnze/go-mc/nbt"

	"github.com/arloliu/anvil/block"
	"github.com/arloliu/anvil/format"
	"github.com/arloliu/anvil/region"
)

const (
	// SectionCount is the number of vertical sections in a chunk.
	SectionCount = 24
	// MinSectionY is the Y index of the lowest section.
	MinSectionY = -4
	// MaxSectionY is the Y index of the highest section.
	MaxSectionY = MinSectionY + SectionCount - 1
	// SectionVolume is the number of blocks in a section.
	SectionVolume = 16 * 16 * 16
	// MinY is the lowest block Y coordinate.
	MinY = MinSectionY * 16
	// MaxY is the highest block Y coordinate.
	MaxY = (MaxSectionY+1)*16 - 1
)

// Chunk is the decoded form of one chunk document.
type Chunk struct {
	Pos         region.ChunkPos
	Status      format.ChunkStatus
	DataVersion int32
	// LastUpdate is the game tick of the last save, carried as stored.
	LastUpdate int64
	// Sections holds section Y = i + MinSectionY at index i; nil means absent.
	Sections   [SectionCount]*Section
	Heightmaps map[string][]int64
}

// New creates an empty, fully generated chunk at pos.
func New(pos region.ChunkPos) *Chunk {
	return &Chunk{
		Pos:         pos,
		Status:      format.StatusFull,
		DataVersion: format.DataVersion,
		Heightmaps:  make(map[string][]int64),
	}
}

// Block returns the state at chunk-local x and z (0..15) and world y.
// Blocks outside the chunk or in absent sections are air.
func (c *Chunk) Block(x, y, z int) block.StateID {
	s, ok := sectionOf(y)
	if !ok || !inSection(x, z) || c.Sections[s] == nil {
		return block.AirID
	}

	return c.Sections[s].Get(x, y&15, z)
}

// SetBlock sets the state at chunk-local x and z (0..15) and world y, creating the
// section if needed. Coordinates outside the chunk are ignored.
func (c *Chunk) SetBlock(x, y, z int, id block.StateID) {
	s, ok := sectionOf(y)
	if !ok || !inSection(x, z) {
		return
	}
	if c.Sections[s] == nil {
		c.Sections[s] = NewSection()
	}
	c.Sections[s].Set(x, y&15, z, id)
}

func sectionOf(y int) (int, bool) {
	if y < MinY || y > MaxY {
		return 0, false
	}

	return (y - MinY) >> 4, true
}

func inSection(x, z int) bool {
	return x >= 0 && x < 16 && z >= 0 && z < 16
}

// Section is one 16×16×16 slab of block states.
type Section struct {
	// States is indexed by SectionIndex(x, y, z).
	States [SectionVolume]block.StateID

	biomes *nbt.RawMessage
}

// NewSection returns a section filled with air.
func NewSection() *Section {
	return &Section{}
}

// SectionIndex returns the position of a section-local block in Section.States.
func SectionIndex(x, y, z int) int {
	return y<<8 | z<<4 | x
}

// Get returns the state at section-local coordinates.
func (s *Section) Get(x, y, z int) block.StateID {
	return s.States[SectionIndex(x, y, z)]
}

// Set stores the state at section-local coordinates.
func (s *Section) Set(x, y, z int, id block.StateID) {
	s.States[SectionIndex(x, y, z)] = id
}

// Fill sets every block of the section to id.
func (s *Section) Fill(id block.StateID) {
	for i := range s.States {
		s.States[i] = id
	}
}

// IsEmpty reports whether every block is air.
func (s *Section) IsEmpty() bool {
	for _, id := range s.States {
		if id != block.AirID {
			return false
		}
	}

	return true
}
