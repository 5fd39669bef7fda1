package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompressionType_String(t *testing.T) {
	tests := []struct {
		name     string
		cType    CompressionType
		expected string
	}{
		{name: "gzip", cType: CompressionGZip, expected: "GZip"},
		{name: "zlib", cType: CompressionZLib, expected: "ZLib"},
		{name: "none", cType: CompressionNone, expected: "None"},
		{name: "none alias", cType: CompressionType(0), expected: "None"},
		{name: "lz4", cType: CompressionLZ4, expected: "LZ4"},
		{name: "unknown", cType: CompressionType(0x7F), expected: "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.cType.String())
		})
	}
}

func TestCompressionType_Canonical(t *testing.T) {
	c, ok := CompressionType(0).Canonical()
	require.True(t, ok)
	require.Equal(t, CompressionNone, c)

	c, ok = CompressionZLib.Canonical()
	require.True(t, ok)
	require.Equal(t, CompressionZLib, c)

	_, ok = CompressionType(5).Canonical()
	require.False(t, ok)
}

func TestParseCompression(t *testing.T) {
	c, ok := ParseCompression("LZ4")
	require.True(t, ok)
	require.Equal(t, CompressionLZ4, c)

	c, ok = ParseCompression("")
	require.True(t, ok)
	require.Equal(t, CompressionZLib, c)

	_, ok = ParseCompression("zstd")
	require.False(t, ok)
}

func TestParseArchiveCompression(t *testing.T) {
	a, ok := ParseArchiveCompression("s2")
	require.True(t, ok)
	require.Equal(t, ArchiveS2, a)
	require.Equal(t, "S2", a.String())

	_, ok = ParseArchiveCompression("brotli")
	require.False(t, ok)
}

func TestChunkStatus(t *testing.T) {
	require.Equal(t, "minecraft:full", StatusFull.String())
	require.Equal(t, StatusFull, ParseChunkStatus("minecraft:full"))
	require.Equal(t, StatusFull, ParseChunkStatus("full"))
	require.Equal(t, StatusNoise, ParseChunkStatus("minecraft:noise"))
	require.Equal(t, StatusUnknown, ParseChunkStatus("minecraft:bogus"))
	require.Equal(t, "unknown", StatusUnknown.String())
}
