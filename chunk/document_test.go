package chunk

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/Tnze/go-mc/nbt"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/anvil/block"
	"github.com/arloliu/anvil/errs"
	"github.com/arloliu/anvil/format"
	"github.com/arloliu/anvil/internal/logger"
	"github.com/arloliu/anvil/region"
)

func sampleChunk(reg block.Registry, pos region.ChunkPos) *Chunk {
	c := New(pos)
	c.LastUpdate = 123456

	stone := reg.ID(block.NewBlockState("minecraft:stone"))
	dirt := reg.ID(block.NewBlockState("minecraft:dirt"))
	logY := reg.ID(block.NewBlockState("minecraft:oak_log", "axis", "y"))

	// uniform bedrock-ish floor
	floor := NewSection()
	floor.Fill(stone)
	c.Sections[0] = floor

	// mixed section with more than 16 distinct states
	mixed := NewSection()
	for i := range mixed.States {
		mixed.States[i] = reg.ID(block.NewBlockState("test:block", "variant", string(rune('a'+i%20))))
	}
	c.Sections[4] = mixed

	// sparse section
	c.SetBlock(1, 80, 2, dirt)
	c.SetBlock(3, 81, 4, logY)

	// explicit all-air section is kept
	c.Sections[23] = NewSection()

	c.Heightmaps["MOTION_BLOCKING"] = make([]int64, 37)
	c.Heightmaps["WORLD_SURFACE"] = []int64{1, 2, 3}

	return c
}

func TestMarshalUnmarshal_RoundTrip(t *testing.T) {
	reg := block.NewInternRegistry()
	pos := region.ChunkPos{X: -1, Z: 40}
	c := sampleChunk(reg, pos)

	data, err := Marshal(c, reg)
	require.NoError(t, err)

	decoded, err := Unmarshal(data, pos, reg, logger.Nop())
	require.NoError(t, err)

	require.Equal(t, pos, decoded.Pos)
	require.Equal(t, format.StatusFull, decoded.Status)
	require.Equal(t, format.DataVersion, decoded.DataVersion)
	require.Equal(t, int64(123456), decoded.LastUpdate)
	require.Equal(t, c.Heightmaps, decoded.Heightmaps)

	for i := range c.Sections {
		if c.Sections[i] == nil {
			require.Nil(t, decoded.Sections[i], "section %d", i)
			continue
		}
		require.NotNil(t, decoded.Sections[i], "section %d", i)
		require.Equal(t, c.Sections[i].States, decoded.Sections[i].States, "section %d", i)
	}
}

func TestMarshalUnmarshal_FreshRegistry(t *testing.T) {
	writeReg := block.NewInternRegistry()
	c := sampleChunk(writeReg, region.ChunkPos{X: 5, Z: 5})

	data, err := Marshal(c, writeReg)
	require.NoError(t, err)

	// ids differ between registries; states must not
	readReg := block.NewInternRegistry()
	readReg.ID(block.NewBlockState("minecraft:bedrock"))
	decoded, err := Unmarshal(data, c.Pos, readReg, nil)
	require.NoError(t, err)

	for i, s := range c.Sections {
		if s == nil {
			continue
		}
		for j, id := range s.States {
			want, _ := writeReg.State(id)
			got, _ := readReg.State(decoded.Sections[i].States[j])
			require.True(t, want.Equal(got), "section %d block %d: %s != %s", i, j, want, got)
		}
	}
}

func TestMarshal_UnknownStateID(t *testing.T) {
	reg := block.NewInternRegistry()
	c := New(region.ChunkPos{})
	c.SetBlock(0, 0, 0, 999)

	_, err := Marshal(c, reg)
	require.ErrorIs(t, err, errs.ErrSerializing)
}

func TestMarshal_DefaultsDataVersion(t *testing.T) {
	reg := block.NewInternRegistry()
	c := &Chunk{Status: format.StatusFull}

	data, err := Marshal(c, reg)
	require.NoError(t, err)

	var doc document
	require.NoError(t, nbt.Unmarshal(data, &doc))
	require.Equal(t, format.DataVersion, doc.DataVersion)
	require.Equal(t, "minecraft:full", doc.Status)
	require.Equal(t, int32(MinSectionY), doc.YPos)
	require.Empty(t, doc.Sections)
}

func TestMarshal_SingleValuePaletteHasData(t *testing.T) {
	reg := block.NewInternRegistry()
	c := New(region.ChunkPos{})
	c.Sections[2] = NewSection()

	data, err := Marshal(c, reg)
	require.NoError(t, err)

	var doc document
	require.NoError(t, nbt.Unmarshal(data, &doc))
	require.Len(t, doc.Sections, 1)
	require.Equal(t, int8(-2), doc.Sections[0].Y)
	require.Equal(t, []paletteEntry{{Name: "minecraft:air"}}, doc.Sections[0].BlockStates.Palette)
	require.Len(t, doc.Sections[0].BlockStates.Data, 256)
}

func TestPeekStatus(t *testing.T) {
	for _, status := range []format.ChunkStatus{format.StatusEmpty, format.StatusNoise, format.StatusFull} {
		data, err := nbt.Marshal(statusOnly{Status: status.String()})
		require.NoError(t, err)

		got, err := PeekStatus(data)
		require.NoError(t, err)
		require.Equal(t, status, got)
	}

	_, err := PeekStatus([]byte{0xFF, 0x00})
	require.ErrorIs(t, err, errs.ErrParsing)
}

func TestUnmarshal_NotFull(t *testing.T) {
	reg := block.NewInternRegistry()
	c := New(region.ChunkPos{})
	c.Status = format.StatusFeatures

	data, err := Marshal(c, reg)
	require.NoError(t, err)

	_, err = Unmarshal(data, c.Pos, reg, nil)
	require.ErrorIs(t, err, errs.ErrChunkNotExist)
}

func TestUnmarshal_BareStatusName(t *testing.T) {
	data, err := nbt.Marshal(document{Status: "full", DataVersion: 3465})
	require.NoError(t, err)

	c, err := Unmarshal(data, region.ChunkPos{}, block.NewInternRegistry(), nil)
	require.NoError(t, err)
	require.Equal(t, int32(3465), c.DataVersion)
}

func TestUnmarshal_Garbage(t *testing.T) {
	_, err := Unmarshal([]byte("definitely not nbt"), region.ChunkPos{}, block.NewInternRegistry(), nil)
	require.ErrorIs(t, err, errs.ErrParsing)
}

func TestUnmarshal_SectionErrors(t *testing.T) {
	stone := []paletteEntry{{Name: "minecraft:stone"}}

	tests := []struct {
		name     string
		sections []sectionNBT
		wantErr  []error
	}{
		{
			name:     "y too high",
			sections: []sectionNBT{{Y: 20, BlockStates: &blockStatesNBT{Palette: stone}}},
			wantErr:  []error{errs.ErrParsing},
		},
		{
			name:     "y too low",
			sections: []sectionNBT{{Y: -5, BlockStates: &blockStatesNBT{Palette: stone}}},
			wantErr:  []error{errs.ErrParsing},
		},
		{
			name: "duplicate y",
			sections: []sectionNBT{
				{Y: 0, BlockStates: &blockStatesNBT{Palette: stone}},
				{Y: 0, BlockStates: &blockStatesNBT{Palette: stone}},
			},
			wantErr: []error{errs.ErrParsing},
		},
		{
			name:     "empty palette",
			sections: []sectionNBT{{Y: 0, BlockStates: &blockStatesNBT{Palette: []paletteEntry{}, Data: make([]int64, 256)}}},
			wantErr:  []error{errs.ErrParsing, errs.ErrInvalidPalette},
		},
		{
			name:     "index out of range",
			sections: []sectionNBT{{Y: 0, BlockStates: &blockStatesNBT{Palette: stone, Data: append([]int64{0x5}, make([]int64, 255)...)}}},
			wantErr:  []error{errs.ErrParsing, errs.ErrInvalidPalette},
		},
		{
			name:     "short data",
			sections: []sectionNBT{{Y: 0, BlockStates: &blockStatesNBT{Palette: stone, Data: make([]int64, 10)}}},
			wantErr:  []error{errs.ErrParsing, errs.ErrInvalidPalette},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := nbt.Marshal(document{Status: "minecraft:full", Sections: tt.sections})
			require.NoError(t, err)

			_, err = Unmarshal(data, region.ChunkPos{}, block.NewInternRegistry(), nil)
			for _, want := range tt.wantErr {
				require.ErrorIs(t, err, want)
			}
		})
	}
}

func TestUnmarshal_AbsentDataIsUniform(t *testing.T) {
	reg := block.NewInternRegistry()
	data, err := nbt.Marshal(document{
		Status: "minecraft:full",
		Sections: []sectionNBT{
			{Y: 1, BlockStates: &blockStatesNBT{Palette: []paletteEntry{{Name: "minecraft:deepslate", Properties: map[string]string{"axis": "y"}}}}},
			{Y: 2},
		},
	})
	require.NoError(t, err)

	c, err := Unmarshal(data, region.ChunkPos{}, reg, nil)
	require.NoError(t, err)

	deepslate := reg.ID(block.NewBlockState("minecraft:deepslate", "axis", "y"))
	s := c.Sections[1-MinSectionY]
	require.NotNil(t, s)
	for _, id := range s.States {
		require.Equal(t, deepslate, id)
	}

	// no block_states: section stays absent
	require.Nil(t, c.Sections[2-MinSectionY])
}

func TestUnmarshal_LightOnlySectionsSkipped(t *testing.T) {
	type lightSection struct {
		Y           int8            `nbt:"Y"`
		BlockStates *blockStatesNBT `nbt:"block_states,omitempty"`
		SkyLight    []byte          `nbt:"SkyLight,omitempty"`
	}
	type lightDocument struct {
		Status   string         `nbt:"Status"`
		Sections []lightSection `nbt:"sections"`
	}

	data, err := nbt.Marshal(lightDocument{
		Status: "minecraft:full",
		Sections: []lightSection{
			{Y: -5, SkyLight: make([]byte, 2048)},
			{Y: -4, BlockStates: &blockStatesNBT{Palette: []paletteEntry{{Name: "minecraft:stone"}}}},
			{Y: 20, SkyLight: make([]byte, 2048)},
		},
	})
	require.NoError(t, err)

	reg := block.NewInternRegistry()
	c, err := Unmarshal(data, region.ChunkPos{}, reg, nil)
	require.NoError(t, err)

	stone := reg.ID(block.NewBlockState("minecraft:stone"))
	require.NotNil(t, c.Sections[0])
	for _, id := range c.Sections[0].States {
		require.Equal(t, stone, id)
	}
	for i := 1; i < SectionCount; i++ {
		require.Nil(t, c.Sections[i], "section %d", i)
	}
}

func TestMarshalUnmarshal_PropertyValuesWithSeparators(t *testing.T) {
	reg := block.NewInternRegistry()
	joined := reg.ID(block.NewBlockState("minecraft:x", "a", "1,b=2"))
	split := reg.ID(block.NewBlockState("minecraft:x", "a", "1", "b", "2"))
	require.NotEqual(t, joined, split)

	c := New(region.ChunkPos{})
	c.SetBlock(0, 0, 0, joined)
	c.SetBlock(1, 0, 0, split)

	data, err := Marshal(c, reg)
	require.NoError(t, err)

	fresh := block.NewInternRegistry()
	decoded, err := Unmarshal(data, c.Pos, fresh, nil)
	require.NoError(t, err)

	got, ok := fresh.State(decoded.Block(0, 0, 0))
	require.True(t, ok)
	require.Equal(t, map[string]string{"a": "1,b=2"}, got.Properties)

	got, ok = fresh.State(decoded.Block(1, 0, 0))
	require.True(t, ok)
	require.Equal(t, map[string]string{"a": "1", "b": "2"}, got.Properties)
}

func TestUnmarshal_CoordinateMismatchIsLogged(t *testing.T) {
	reg := block.NewInternRegistry()
	c := New(region.ChunkPos{X: 1, Z: 2})

	data, err := Marshal(c, reg)
	require.NoError(t, err)

	var buf bytes.Buffer
	decoded, err := Unmarshal(data, region.ChunkPos{X: 33, Z: 2}, reg, logger.Text(&buf, slog.LevelWarn))
	require.NoError(t, err)
	require.Equal(t, region.ChunkPos{X: 33, Z: 2}, decoded.Pos)
	require.Contains(t, buf.String(), "chunk coordinate mismatch")
	require.Contains(t, buf.String(), "stored_x=1")
}

func TestMarshalUnmarshal_BiomesCarried(t *testing.T) {
	reg := block.NewInternRegistry()

	biomes, err := nbt.Marshal(struct {
		Palette []string `nbt:"palette"`
	}{Palette: []string{"minecraft:plains"}})
	require.NoError(t, err)
	// strip the root tag type and empty name
	payload := biomes[3:]

	c := New(region.ChunkPos{})
	c.Sections[4] = NewSection()
	c.Sections[4].biomes = &nbt.RawMessage{Type: nbt.TagCompound, Data: payload}

	out, err := Marshal(c, reg)
	require.NoError(t, err)

	again, err := Unmarshal(out, c.Pos, reg, nil)
	require.NoError(t, err)
	require.NotNil(t, again.Sections[4].biomes)
	require.Equal(t, byte(nbt.TagCompound), again.Sections[4].biomes.Type)
	require.Equal(t, payload, again.Sections[4].biomes.Data)
}
