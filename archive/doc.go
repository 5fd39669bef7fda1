// Package archive reads and writes portable chunk archives.
//
// An archive is a flat stream of chunk documents detached from any region
// layout, used for backups and for moving a world between compression schemes.
// All integers are big-endian:
//
//	magic    [4]byte  "ANVA"
//	version  uint8    1
//	codec    uint8    format.ArchiveCompression
//	records, until EOF:
//	  x         int32
//	  z         int32
//	  timestamp uint32  seconds since the Unix epoch
//	  length    uint32  length of body
//	  checksum  uint64  xxHash64 of the uncompressed document
//	  body      [length]byte, compressed with the archive codec
//
// Export and Import move every stored chunk between a store.ChunkStore and an
// archive without decoding the documents:
//
//	n, err := archive.Export(st, f, archive.WithCodec(format.ArchiveZstd))
package archive
