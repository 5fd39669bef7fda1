package region

import (
	"fmt"
	"time"

	"github.com/arloliu/anvil/endian"
	"github.com/arloliu/anvil/errs"
	"github.com/arloliu/anvil/format"
)

var engine = endian.GetBigEndianEngine()

// LocationEntry locates one chunk payload: Offset is the first sector of the run
// and Sectors its length. The zero entry means the chunk is absent.
type LocationEntry struct {
	Offset  uint32 // u24 on disk
	Sectors uint8
}

// IsEmpty reports whether the entry marks an absent chunk.
func (e LocationEntry) IsEmpty() bool {
	return e.Offset == 0 && e.Sectors == 0
}

// End returns the sector just past the run.
func (e LocationEntry) End() uint32 {
	return e.Offset + uint32(e.Sectors)
}

// ByteOffset returns the file offset of the run.
func (e LocationEntry) ByteOffset() int64 {
	return int64(e.Offset) * SectorSize
}

// ByteLength returns the size of the run in bytes.
func (e LocationEntry) ByteLength() int64 {
	return int64(e.Sectors) * SectorSize
}

// LocationTable is the first header sector: one entry per local index.
type LocationTable [EntryCount]LocationEntry

// TimestampTable is the second header sector: last-write epoch seconds per local index.
type TimestampTable [EntryCount]uint32

// Header holds both header tables of a region file.
type Header struct {
	Locations  LocationTable
	Timestamps TimestampTable
}

// Parse decodes both tables from the first HeaderSize bytes of a region file.
//
// Parameters:
//   - data: Byte slice containing the header (must be at least HeaderSize bytes)
//
// Returns:
//   - error: ErrRegionInvalid if data is shorter than HeaderSize
func (h *Header) Parse(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("%w: header is %d bytes, need %d", errs.ErrRegionInvalid, len(data), HeaderSize)
	}

	for i := range EntryCount {
		loc := data[i*locationEntrySize:]
		h.Locations[i] = LocationEntry{
			Offset:  endian.Uint24(loc[0:3]),
			Sectors: loc[3],
		}
		h.Timestamps[i] = engine.Uint32(data[SectorSize+i*timestampSize:])
	}

	return nil
}

// Bytes serializes the header: the location table followed by the timestamp
// table, HeaderSize bytes.
func (h *Header) Bytes() []byte {
	return h.AppendBytes(make([]byte, 0, HeaderSize))
}

// AppendBytes appends the serialized header to b.
func (h *Header) AppendBytes(b []byte) []byte {
	for _, e := range h.Locations {
		b = endian.AppendUint24(b, e.Offset)
		b = append(b, e.Sectors)
	}
	for _, ts := range h.Timestamps {
		b = engine.AppendUint32(b, ts)
	}

	return b
}

// Set updates the location and timestamp of one local index.
func (h *Header) Set(index int, entry LocationEntry, modified time.Time) {
	h.Locations[index] = entry
	h.Timestamps[index] = uint32(modified.Unix())
}

// PayloadHeader prefixes every chunk payload in a sector run.
type PayloadHeader struct {
	// Length counts the scheme byte plus the compressed body.
	Length uint32
	Scheme format.CompressionType
}

// NewPayloadHeader returns the header for a body of bodyLen bytes.
func NewPayloadHeader(scheme format.CompressionType, bodyLen int) PayloadHeader {
	return PayloadHeader{Length: uint32(bodyLen) + 1, Scheme: scheme}
}

// BodyLen returns the length of the compressed body.
func (p PayloadHeader) BodyLen() int {
	if p.Length == 0 {
		return 0
	}

	return int(p.Length - 1)
}

// Parse decodes a payload header from the first PayloadHeaderSize bytes of data.
func (p *PayloadHeader) Parse(data []byte) error {
	if len(data) < PayloadHeaderSize {
		return fmt.Errorf("%w: payload header is %d bytes, need %d", errs.ErrInvalidHeader, len(data), PayloadHeaderSize)
	}

	p.Length = engine.Uint32(data[0:4])
	p.Scheme = format.CompressionType(data[4])

	return nil
}

// AppendBytes appends the serialized payload header to b.
func (p PayloadHeader) AppendBytes(b []byte) []byte {
	b = engine.AppendUint32(b, p.Length)
	return append(b, byte(p.Scheme))
}

// SectorsFor returns the number of sectors needed to store a body of bodyLen
// bytes together with its payload header.
func SectorsFor(bodyLen int) int {
	return (PayloadHeaderSize + bodyLen + SectorSize - 1) / SectorSize
}
