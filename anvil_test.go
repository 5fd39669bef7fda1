package anvil

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/anvil/errs"
	"github.com/arloliu/anvil/format"
	"github.com/arloliu/anvil/store"
)

func TestOpen_SaveLoad(t *testing.T) {
	st, err := Open(t.TempDir())
	require.NoError(t, err)

	pos := ChunkPos{X: -1, Z: -1}
	_, err = st.LoadChunk(pos)
	require.True(t, errors.Is(err, errs.ErrChunkNotExist))

	c := NewChunk(pos)
	stone := st.Registry().ID(NewBlockState("minecraft:stone"))
	c.SetBlock(0, 64, 0, stone)
	require.NoError(t, st.SaveChunk(pos, c))

	loaded, err := st.LoadChunk(pos)
	require.NoError(t, err)
	require.Equal(t, stone, loaded.Block(0, 64, 0))
	require.Equal(t, RegionPos{X: -1, Z: -1}, loaded.Pos.Region())
}

func TestOpen_SharedRegistry(t *testing.T) {
	reg := NewRegistry()
	dir := t.TempDir()

	a, err := Open(dir, store.WithRegistry(reg))
	require.NoError(t, err)
	b, err := Open(dir, store.WithRegistry(reg), store.WithCompression(format.CompressionGZip))
	require.NoError(t, err)

	pos := ChunkPos{X: 10, Z: 10}
	c := NewChunk(pos)
	c.SetBlock(15, -64, 15, reg.ID(NewBlockState("minecraft:bedrock")))
	require.NoError(t, b.SaveChunk(pos, c))

	loaded, err := a.LoadChunk(pos)
	require.NoError(t, err)
	require.Equal(t, c.Block(15, -64, 15), loaded.Block(15, -64, 15))
}

func TestOpen_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	st, err := Open(t.TempDir(), store.WithLogger(log))
	require.NoError(t, err)
	require.NoError(t, st.SaveChunk(ChunkPos{}, NewChunk(ChunkPos{})))
	require.Contains(t, buf.String(), "creating region file")
}

func TestOpen_InvalidOption(t *testing.T) {
	_, err := Open(t.TempDir(), store.WithCompressionLevel(42))
	require.ErrorIs(t, err, errs.ErrInvalidOption)
}
