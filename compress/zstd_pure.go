//go:build !cgozstd || !cgo

package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// zstdWindowSize covers a whole chunk document, so matches can reach back to
// the first section's palette.
const zstdWindowSize = 1 << 20

// Encoders and decoders are pooled one per goroutine: EncodeAll and DecodeAll
// are single-shot, so internal concurrency would only cost memory.
var (
	zstdEncoderPool = sync.Pool{
		New: func() any {
			enc, err := zstd.NewWriter(nil,
				zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
				zstd.WithEncoderConcurrency(1),
				zstd.WithWindowSize(zstdWindowSize),
				zstd.WithEncoderCRC(false), // records carry an xxHash64 of the raw document
			)
			if err != nil {
				panic(fmt.Sprintf("zstd encoder: %v", err))
			}

			return enc
		},
	}

	zstdDecoderPool = sync.Pool{
		New: func() any {
			dec, err := zstd.NewReader(nil,
				zstd.WithDecoderConcurrency(1),
				zstd.WithDecoderMaxMemory(MaxDocumentSize),
			)
			if err != nil {
				panic(fmt.Sprintf("zstd decoder: %v", err))
			}

			return dec
		},
	}
)

// Compress encodes data as a single zstd frame.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	enc, _ := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(enc)

	return enc.EncodeAll(data, make([]byte, 0, len(data)/4)), nil
}

// Decompress decodes a zstd frame of at most MaxDocumentSize bytes.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dec, _ := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(dec)

	out, err := dec.DecodeAll(data, nil)
	if errors.Is(err, zstd.ErrDecoderSizeExceeded) || errors.Is(err, zstd.ErrWindowSizeExceeded) {
		return nil, errDocumentTooLarge
	}
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}

	return out, nil
}
