package compress

import (
	"fmt"
	"io"

	"github.com/arloliu/anvil/errs"
	"github.com/arloliu/anvil/format"
)

// DefaultLevel is the compression level used for region payloads when none is configured.
const DefaultLevel = 6

// MaxDocumentSize bounds the decompressed size of a single payload. A vanilla
// chunk document is a few hundred KiB at most; anything past this limit is
// treated as a corrupt or hostile stream and fails with ErrCodec.
const MaxDocumentSize = 32 << 20

var errDocumentTooLarge = fmt.Errorf("%w: decompressed payload exceeds %d bytes", errs.ErrCodec, MaxDocumentSize)

// Compressor compresses a complete chunk payload.
//
// Memory management:
//   - Returned slice is newly allocated and owned by the caller (NoOp excepted)
//   - Input slice is not modified
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload produced by the matching Compressor.
//
// Implementations are safe for concurrent use.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats describes the effect of compressing one payload.
type CompressionStats struct {
	// Algorithm identifies the region scheme used
	Algorithm format.CompressionType

	// OriginalSize is the size of input data before compression
	OriginalSize int64

	// CompressedSize is the size of data after compression
	CompressedSize int64
}

// CompressionRatio returns the compression ratio (compressed size / original size).
//
// Returns:
//   - float64: Compression ratio (0.0 if original size is zero)
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space savings as a percentage.
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// CreateCodec is a factory function that creates a Codec for a region payload scheme.
//
// Parameters:
//   - compressionType: Scheme byte read from or written to a payload header
//   - level: Compression level, ignored by schemes without levels
//
// Returns:
//   - Codec: Codec instance for the specified scheme
//   - error: ErrUnknownCompression for bytes outside the region format,
//     ErrInvalidOption for an out-of-range level
func CreateCodec(compressionType format.CompressionType, level int) (Codec, error) {
	canonical, ok := compressionType.Canonical()
	if !ok {
		return nil, unknownScheme(compressionType)
	}

	switch canonical { //nolint: exhaustive
	case format.CompressionGZip:
		return NewGZipCompressor(level)
	case format.CompressionZLib:
		return NewZLibCompressor(level)
	case format.CompressionLZ4:
		return NewLZ4FrameCompressor(level), nil
	default:
		return NewNoOpCompressor(), nil
	}
}

// CreateArchiveCodec creates a Codec for archive records.
func CreateArchiveCodec(compressionType format.ArchiveCompression) (Codec, error) {
	switch compressionType {
	case format.ArchiveNone:
		return NewNoOpCompressor(), nil
	case format.ArchiveZstd:
		return NewZstdCompressor(), nil
	case format.ArchiveS2:
		return NewS2Compressor(), nil
	case format.ArchiveLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("%w: %w: archive codec 0x%02x", errs.ErrCompression, errs.ErrUnknownCompression, uint8(compressionType))
	}
}

// Compress compresses data under the given region scheme and level.
// Errors wrap ErrCompression and either ErrUnknownCompression or ErrCodec.
func Compress(data []byte, compressionType format.CompressionType, level int) ([]byte, error) {
	codec, err := CreateCodec(compressionType, level)
	if err != nil {
		return nil, err
	}

	out, err := codec.Compress(data)
	if err != nil {
		return nil, codecError(compressionType, "compress", err)
	}

	return out, nil
}

// Decompress decompresses data stored under the given region scheme.
// Errors wrap ErrCompression and either ErrUnknownCompression or ErrCodec.
func Decompress(data []byte, compressionType format.CompressionType) ([]byte, error) {
	codec, err := CreateCodec(compressionType, DefaultLevel)
	if err != nil {
		return nil, err
	}

	out, err := codec.Decompress(data)
	if err != nil {
		return nil, codecError(compressionType, "decompress", err)
	}

	return out, nil
}

// readDocument drains r, failing once more than MaxDocumentSize bytes come out.
func readDocument(r io.Reader) ([]byte, error) {
	out, err := io.ReadAll(io.LimitReader(r, MaxDocumentSize+1))
	if err != nil {
		return nil, err
	}
	if len(out) > MaxDocumentSize {
		return nil, errDocumentTooLarge
	}

	return out, nil
}

func unknownScheme(t format.CompressionType) error {
	return fmt.Errorf("%w: %w: scheme 0x%02x", errs.ErrCompression, errs.ErrUnknownCompression, uint8(t))
}

func codecError(t format.CompressionType, op string, err error) error {
	return fmt.Errorf("%w: %w: %s %s: %w", errs.ErrCompression, errs.ErrCodec, t, op, err)
}

func validateFlateLevel(level int) error {
	// -2 is Huffman-only, -1 the library default.
	if level < -2 || level > 9 {
		return fmt.Errorf("%w: compression level %d out of range [-2, 9]", errs.ErrInvalidOption, level)
	}

	return nil
}
