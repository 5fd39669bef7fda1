package compress

import (
	"bytes"
	"sync"

	"github.com/klauspost/compress/gzip"
)

// GZipCompressor implements the gzip region scheme.
//
// Rarely written by modern servers, but readers must support it.
type GZipCompressor struct {
	level   int
	writers *sync.Pool
}

var _ Codec = GZipCompressor{}

// NewGZipCompressor creates a gzip compressor for the given level.
func NewGZipCompressor(level int) (GZipCompressor, error) {
	if err := validateFlateLevel(level); err != nil {
		return GZipCompressor{}, err
	}

	return GZipCompressor{
		level: level,
		writers: &sync.Pool{
			New: func() any {
				w, _ := gzip.NewWriterLevel(nil, level)
				return w
			},
		},
	}, nil
}

// Compress compresses data into a single gzip member.
func (c GZipCompressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(len(data)/2 + 64)

	w, _ := c.writers.Get().(*gzip.Writer)
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

// Decompress decompresses a gzip stream.
func (c GZipCompressor) Decompress(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return readDocument(r)
}
