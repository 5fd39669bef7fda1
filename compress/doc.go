// Package compress provides the compression codecs for region payloads and chunk archives.
//
// # Region Schemes
//
// Every chunk payload in a region file is prefixed by a scheme byte. The set of legal
// bytes is fixed by the file format and modelled as the closed enum
// format.CompressionType:
//
//	1  GZip  klauspost/compress/gzip
//	2  ZLib  klauspost/compress/zlib (default for writes, level 6)
//	3  None  passthrough (byte 0 is read as an alias)
//	4  LZ4   pierrec/lz4/v4, frame format
//
// Readers must honor whatever byte is stored, never the writer's default:
//
//	body, err := compress.Decompress(payload, header.Scheme)
//	if errors.Is(err, errs.ErrUnknownCompression) {
//	    // payload written by software using a scheme this engine does not know
//	}
//
// Writers usually build a codec once and reuse it, which keeps pooled flate writers warm:
//
//	codec, err := compress.CreateCodec(format.CompressionZLib, compress.DefaultLevel)
//	compressed, err := codec.Compress(document)
//
// Codecs bundles one long-lived codec per region scheme for engines that read
// whatever scheme is stored and write a configured one:
//
//	codecs, err := compress.NewCodecs(compress.DefaultLevel)
//	body, err := codecs.Decompress(payload, header.Scheme)
//
// # Archive Codecs
//
// Chunk archives (package archive) are not region files and may use codecs the
// region format does not define. format.ArchiveCompression selects one of:
//
//   - None: records stored as-is
//   - Zstd: best ratio, the default (pure Go, or valyala/gozstd with the cgozstd tag)
//   - S2: fast, moderate ratio
//   - LZ4: raw LZ4 blocks
//
// # Size Limit
//
// Decompression stops at MaxDocumentSize (32 MiB) of output. A payload that
// inflates past it fails with errs.ErrCodec instead of exhausting memory.
// Stream codecs read through an io.LimitReader; the S2 and zstd decoders check
// the size recorded in the block or frame header first.
//
// # Errors
//
// The package-level Compress and Decompress and the Codecs methods wrap failures
// with errs.ErrCompression and either errs.ErrUnknownCompression or errs.ErrCodec.
// Codec methods return the underlying library error unwrapped.
//
// # Thread Safety
//
// All codecs are safe for concurrent use. Pooled encoders are never shared between
// concurrent calls.
package compress
