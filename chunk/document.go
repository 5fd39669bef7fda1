package chunk

import (
	"bytes"
	"fmt"

	"github.com/Tnze/go-mc/nbt"

	"github.com/arloliu/anvil/block"
	"github.com/arloliu/anvil/encoding"
	"github.com/arloliu/anvil/errs"
	"github.com/arloliu/anvil/format"
	"github.com/arloliu/anvil/internal/logger"
	"github.com/arloliu/anvil/internal/pool"
	"github.com/arloliu/anvil/region"
)

type document struct {
	DataVersion int32              `nbt:"DataVersion"`
	XPos        int32              `nbt:"xPos"`
	YPos        int32              `nbt:"yPos"`
	ZPos        int32              `nbt:"zPos"`
	Status      string             `nbt:"Status"`
	LastUpdate  int64              `nbt:"LastUpdate"`
	Sections    []sectionNBT       `nbt:"sections"`
	Heightmaps  map[string][]int64 `nbt:"Heightmaps,omitempty"`
}

type sectionNBT struct {
	Y           int8            `nbt:"Y"`
	BlockStates *blockStatesNBT `nbt:"block_states,omitempty"`
	Biomes      *nbt.RawMessage `nbt:"biomes,omitempty"`
}

type blockStatesNBT struct {
	Palette []paletteEntry `nbt:"palette"`
	Data    []int64        `nbt:"data,omitempty"`
}

type paletteEntry struct {
	Name       string            `nbt:"Name"`
	Properties map[string]string `nbt:"Properties,omitempty"`
}

type statusOnly struct {
	Status string `nbt:"Status"`
}

// PeekStatus decodes only the status of a chunk document.
//
// Returns:
//   - format.ChunkStatus: The stored status, StatusUnknown for unrecognized names
//   - error: ErrParsing if data is not an NBT compound
func PeekStatus(data []byte) (format.ChunkStatus, error) {
	var s statusOnly
	if err := nbt.Unmarshal(data, &s); err != nil {
		return format.StatusUnknown, fmt.Errorf("%w: status: %w", errs.ErrParsing, err)
	}

	return format.ParseChunkStatus(s.Status), nil
}

// Marshal encodes c as an NBT chunk document. Every non-nil section is written
// with its palette and packed data; nil sections are left out.
//
// Parameters:
//   - c: The chunk to encode
//   - reg: Registry that resolves the section state ids
//
// Returns:
//   - []byte: The uncompressed NBT document
//   - error: ErrSerializing on an unknown state id or encoder failure
func Marshal(c *Chunk, reg block.Registry) ([]byte, error) {
	dataVersion := c.DataVersion
	if dataVersion == 0 {
		dataVersion = format.DataVersion
	}

	doc := document{
		DataVersion: dataVersion,
		XPos:        c.Pos.X,
		YPos:        MinSectionY,
		ZPos:        c.Pos.Z,
		Status:      c.Status.String(),
		LastUpdate:  c.LastUpdate,
		Sections:    make([]sectionNBT, 0, SectionCount),
		Heightmaps:  c.Heightmaps,
	}

	var releases []func()
	defer func() {
		for _, release := range releases {
			release()
		}
	}()

	for i, s := range c.Sections {
		if s == nil {
			continue
		}

		ids, words := encoding.EncodePalette(s.States[:])

		palette := make([]paletteEntry, len(ids))
		for j, id := range ids {
			state, ok := reg.State(id)
			if !ok {
				return nil, fmt.Errorf("%w: section %d uses unregistered state id %d", errs.ErrSerializing, i+MinSectionY, id)
			}
			palette[j] = paletteEntry{Name: state.Name, Properties: state.Properties}
		}

		data, release := pool.GetInt64Slice(len(words))
		releases = append(releases, release)
		for j, w := range words {
			data[j] = int64(w)
		}

		doc.Sections = append(doc.Sections, sectionNBT{
			Y:           int8(i + MinSectionY),
			BlockStates: &blockStatesNBT{Palette: palette, Data: data},
			Biomes:      s.biomes,
		})
	}

	buf := pool.GetDocumentBuffer()
	defer pool.PutDocumentBuffer(buf)

	if err := nbt.NewEncoder(buf).Encode(doc, ""); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errs.ErrSerializing, c.Pos, err)
	}

	return bytes.Clone(buf.Bytes()), nil
}

// Unmarshal decodes an NBT chunk document requested at pos.
//
// The status is checked before the rest of the document is decoded: a chunk that
// is not fully generated is reported as absent. A stored coordinate that differs
// from pos is logged and otherwise ignored; the returned chunk is placed at pos.
//
// Returns:
//   - *Chunk: The decoded chunk
//   - error: ErrChunkNotExist for a chunk that is not fully generated, ErrParsing
//     when the status cannot be decoded, for a malformed document, a block
//     section Y outside [-4, 19], a repeated section or an invalid palette.
//     Sections without block_states are skipped whatever their Y.
func Unmarshal(data []byte, pos region.ChunkPos, reg block.Registry, log logger.Logger) (*Chunk, error) {
	if log == nil {
		log = logger.Nop()
	}

	status, err := PeekStatus(data)
	if err != nil {
		return nil, err
	}
	if status != format.StatusFull {
		return nil, fmt.Errorf("%w: %s has status %s", errs.ErrChunkNotExist, pos, status)
	}

	var doc document
	if err := nbt.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errs.ErrParsing, pos, err)
	}

	if doc.XPos != pos.X || doc.ZPos != pos.Z {
		log.Warn("chunk coordinate mismatch",
			"expected_x", pos.X, "expected_z", pos.Z,
			"stored_x", doc.XPos, "stored_z", doc.ZPos)
	}

	c := &Chunk{
		Pos:         pos,
		Status:      status,
		DataVersion: doc.DataVersion,
		LastUpdate:  doc.LastUpdate,
		Heightmaps:  doc.Heightmaps,
	}
	if c.Heightmaps == nil {
		c.Heightmaps = make(map[string][]int64)
	}

	for _, sec := range doc.Sections {
		// light-only sections sit one above and below the block range
		if sec.BlockStates == nil {
			continue
		}
		idx := int(sec.Y) - MinSectionY
		if idx < 0 || idx >= SectionCount {
			return nil, fmt.Errorf("%w: %s: section Y %d outside [%d, %d]", errs.ErrParsing, pos, sec.Y, MinSectionY, MaxSectionY)
		}
		if c.Sections[idx] != nil {
			return nil, fmt.Errorf("%w: %s: section Y %d appears twice", errs.ErrParsing, pos, sec.Y)
		}

		s, err := decodeSection(sec, reg)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: section Y %d: %w", errs.ErrParsing, pos, sec.Y, err)
		}
		c.Sections[idx] = s
	}

	return c, nil
}

func decodeSection(sec sectionNBT, reg block.Registry) (*Section, error) {
	ids := make([]block.StateID, len(sec.BlockStates.Palette))
	for i, entry := range sec.BlockStates.Palette {
		ids[i] = reg.ID(block.BlockState{Name: entry.Name, Properties: entry.Properties})
	}

	words := make([]uint64, len(sec.BlockStates.Data))
	for i, w := range sec.BlockStates.Data {
		words[i] = uint64(w)
	}

	states, err := encoding.DecodePalette(ids, words, SectionVolume)
	if err != nil {
		return nil, err
	}

	s := &Section{biomes: sec.Biomes}
	copy(s.States[:], states)

	return s, nil
}
