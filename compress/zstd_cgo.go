//go:build cgozstd && cgo

package compress

import (
	"bytes"

	"github.com/valyala/gozstd"
)

// zstdLevel matches the pure Go build's SpeedBetterCompression closely enough
// that archive sizes do not depend on the build tag.
const zstdLevel = 7

// Compress encodes data as a single zstd frame.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.CompressLevel(nil, data, zstdLevel), nil
}

// Decompress decodes a zstd frame of at most MaxDocumentSize bytes.
//
// gozstd.Decompress trusts the frame header, so the streaming reader is used
// to enforce the limit.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	zr := gozstd.NewReader(bytes.NewReader(data))
	defer zr.Release()

	return readDocument(zr)
}
