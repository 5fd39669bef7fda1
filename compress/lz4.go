package compress

import (
	"bytes"
	"errors"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4CompressorPool pools lz4.Compressor instances for reuse.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

var lz4FrameLevels = [...]lz4.CompressionLevel{
	lz4.Fast,
	lz4.Level1, lz4.Level2, lz4.Level3,
	lz4.Level4, lz4.Level5, lz4.Level6,
	lz4.Level7, lz4.Level8, lz4.Level9,
}

// LZ4FrameCompressor implements the LZ4 region scheme using the LZ4 frame format.
type LZ4FrameCompressor struct {
	level lz4.CompressionLevel
}

var _ Codec = LZ4FrameCompressor{}

// NewLZ4FrameCompressor creates an LZ4 frame compressor.
// Levels <= 0 select the fast compressor, levels above 9 are clamped to 9.
func NewLZ4FrameCompressor(level int) LZ4FrameCompressor {
	level = max(0, min(level, len(lz4FrameLevels)-1))

	return LZ4FrameCompressor{level: lz4FrameLevels[level]}
}

// Compress compresses data into a complete LZ4 frame.
func (c LZ4FrameCompressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	zw := lz4.NewWriter(&buf)
	if err := zw.Apply(lz4.CompressionLevelOption(c.level)); err != nil {
		return nil, err
	}
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decompress decompresses an LZ4 frame of at most MaxDocumentSize bytes.
func (c LZ4FrameCompressor) Decompress(data []byte) ([]byte, error) {
	return readDocument(lz4.NewReader(bytes.NewReader(data)))
}

// LZ4Compressor compresses archive records with raw LZ4 blocks.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 block compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses the input data using LZ4 block compression.
//
// Returns:
//   - []byte: Compressed data (nil if input is empty)
//   - error: Compression error if any
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dstSize := lz4.CompressBlockBound(len(data))
	dst := make([]byte, dstSize)

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

// Decompress decompresses an LZ4 block.
//
// The block format does not record the decompressed size, so the buffer starts at
// 4x the compressed size and doubles on ErrInvalidSourceShortBuffer, up to
// MaxDocumentSize.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	bufSize := min(len(data)*4, MaxDocumentSize)
	for {
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(data, buf)
		if err == nil {
			return buf[:n], nil
		}
		if !errors.Is(err, lz4.ErrInvalidSourceShortBuffer) {
			return nil, err
		}
		if bufSize == MaxDocumentSize {
			return nil, errDocumentTooLarge
		}
		bufSize = min(bufSize*2, MaxDocumentSize)
	}
}
