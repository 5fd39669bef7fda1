// Package errs defines the sentinel errors shared by every anvil package.
//
// Errors returned by the storage engine wrap one of these sentinels with
// fmt.Errorf("%w: ..."), so callers classify failures with errors.Is:
//
//	c, err := st.LoadChunk(pos)
//	switch {
//	case errors.Is(err, errs.ErrChunkNotExist):
//	    // fall back to world generation
//	case errors.Is(err, errs.ErrRegionInvalid), errors.Is(err, errs.ErrInvalidHeader):
//	    // data loss for this chunk
//	}
//
// Compression failures wrap ErrCompression together with either
// ErrUnknownCompression or ErrCodec, so both levels of the taxonomy match.
package errs

import "errors"

// Read path.
var (
	// ErrChunkNotExist is returned when no entry is stored for a chunk, when the
	// region file does not exist, or when the stored chunk is not fully generated.
	ErrChunkNotExist = errors.New("chunk does not exist")
	// ErrInvalidHeader is returned when a payload header is inconsistent with the
	// bytes available in its sector run.
	ErrInvalidHeader = errors.New("invalid chunk payload header")
	// ErrRegionInvalid is returned when a location entry points outside the region file.
	ErrRegionInvalid = errors.New("region file is invalid")
	// ErrParsing is returned when a chunk document is structurally invalid.
	ErrParsing = errors.New("failed to parse chunk document")
)

// Write path.
var (
	// ErrSerializing is returned when a chunk cannot be encoded as a document.
	ErrSerializing = errors.New("failed to serialize chunk document")
	// ErrChunkTooLarge is returned when a payload needs more sectors than a
	// location entry can express.
	ErrChunkTooLarge = errors.New("chunk payload exceeds the maximum sector count")
)

// Shared by both paths.
var (
	ErrIO                 = errors.New("region i/o error")
	ErrCompression        = errors.New("compression error")
	ErrUnknownCompression = errors.New("compression scheme not recognised")
	ErrCodec              = errors.New("codec stream error")
)

// Palette, registry and archive errors.
var (
	ErrInvalidPalette    = errors.New("invalid block palette")
	ErrHashCollision     = errors.New("hash collision detected")
	ErrEmptyKey          = errors.New("block state key is empty")
	ErrDuplicateKey      = errors.New("block state key already tracked")
	ErrInvalidArchive    = errors.New("invalid chunk archive")
	ErrChecksum          = errors.New("archive record checksum mismatch")
	ErrInvalidRegionName = errors.New("invalid region file name")
	ErrInvalidOption     = errors.New("invalid option")
)
