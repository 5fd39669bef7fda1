package compress

// ZstdCompressor compresses archive records with Zstandard.
//
// It is the default archive codec: chunk documents are highly repetitive and
// archives are written once and read rarely, so ratio matters more than speed.
//
// Two implementations exist. The default is pure Go (klauspost/compress/zstd).
// Building with the cgozstd tag and cgo enabled switches to valyala/gozstd.
// Both produce standard Zstandard frames, so archives are interchangeable.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
