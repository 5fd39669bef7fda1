package archive

import (
	"time"

	"github.com/arloliu/anvil/endian"
	"github.com/arloliu/anvil/region"
)

const (
	// Magic identifies a chunk archive.
	Magic = "ANVA"
	// Version is the archive layout version written by Writer.
	Version uint8 = 1

	// HeaderSize is the size of the stream header.
	HeaderSize = len(Magic) + 2
	// RecordHeaderSize is the size of the fixed part of a record.
	RecordHeaderSize = 24

	// MaxRecordSize bounds the body length accepted by Reader.
	MaxRecordSize = 64 << 20
)

var engine = endian.GetBigEndianEngine()

// Record is one archived chunk.
type Record struct {
	Pos      region.ChunkPos
	Modified time.Time
	// Data is the uncompressed chunk document.
	Data []byte
}

type recordHeader struct {
	x, z      int32
	timestamp uint32
	length    uint32
	checksum  uint64
}

func (h recordHeader) appendBytes(b []byte) []byte {
	b = engine.AppendUint32(b, uint32(h.x))
	b = engine.AppendUint32(b, uint32(h.z))
	b = engine.AppendUint32(b, h.timestamp)
	b = engine.AppendUint32(b, h.length)

	return engine.AppendUint64(b, h.checksum)
}

func (h *recordHeader) parse(b []byte) {
	h.x = int32(engine.Uint32(b[0:4]))
	h.z = int32(engine.Uint32(b[4:8]))
	h.timestamp = engine.Uint32(b[8:12])
	h.length = engine.Uint32(b[12:16])
	h.checksum = engine.Uint64(b[16:24])
}
