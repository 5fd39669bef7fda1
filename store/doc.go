// Package store is the chunk load/save engine over a directory of region files.
//
// ChunkStore maps a chunk position to its region file and local index, opens the
// file for the duration of one operation, and converts between chunk.Chunk and
// the compressed document stored in the file:
//
//	LoadChunk: region lock (shared) -> region.File.Read -> decompress -> chunk.Unmarshal
//	SaveChunk: chunk.Marshal -> compress -> region lock (exclusive) -> region.File.Write
//
// A missing region file and an empty location entry both read as
// errs.ErrChunkNotExist, as does a stored chunk that is not fully generated.
package store
