package compress

import (
	"bytes"
	"sync"

	"github.com/klauspost/compress/zlib"
)

// ZLibCompressor implements the zlib region scheme, the default for new payloads.
//
// Writers are pooled per compressor; create one compressor per level and reuse it.
type ZLibCompressor struct {
	level   int
	writers *sync.Pool
}

var _ Codec = ZLibCompressor{}

// NewZLibCompressor creates a zlib compressor for the given level.
//
// Returns:
//   - ZLibCompressor: New compressor instance
//   - error: ErrInvalidOption if level is outside [-2, 9]
func NewZLibCompressor(level int) (ZLibCompressor, error) {
	if err := validateFlateLevel(level); err != nil {
		return ZLibCompressor{}, err
	}

	return ZLibCompressor{
		level: level,
		writers: &sync.Pool{
			New: func() any {
				// level was validated above
				w, _ := zlib.NewWriterLevel(nil, level)
				return w
			},
		},
	}, nil
}

// Level returns the configured compression level.
func (c ZLibCompressor) Level() int {
	return c.level
}

// Compress compresses data into a complete zlib stream.
func (c ZLibCompressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(len(data)/2 + 64)

	w, _ := c.writers.Get().(*zlib.Writer)
	defer c.writers.Put(w)
	w.Reset(&buf)

	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decompress decompresses a zlib stream.
func (c ZLibCompressor) Decompress(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return readDocument(r)
}
