package archive

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/arloliu/anvil/compress"
	"github.com/arloliu/anvil/errs"
	"github.com/arloliu/anvil/format"
	"github.com/arloliu/anvil/internal/hash"
	"github.com/arloliu/anvil/region"
)

// Reader reads records from an archive stream.
// A Reader is not safe for concurrent use.
type Reader struct {
	r     *bufio.Reader
	kind  format.ArchiveCompression
	codec compress.Codec
	hdr   [RecordHeaderSize]byte
}

// NewReader reads and validates the stream header.
//
// Returns:
//   - *Reader: A reader positioned at the first record
//   - error: ErrInvalidArchive for a bad magic, unsupported version or unknown codec
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)

	var header [HeaderSize]byte
	if _, err := io.ReadFull(br, header[:]); err != nil {
		return nil, fmt.Errorf("%w: header: %w", errs.ErrInvalidArchive, err)
	}
	if string(header[:len(Magic)]) != Magic {
		return nil, fmt.Errorf("%w: magic %q", errs.ErrInvalidArchive, header[:len(Magic)])
	}
	if v := header[len(Magic)]; v != Version {
		return nil, fmt.Errorf("%w: version %d", errs.ErrInvalidArchive, v)
	}

	kind := format.ArchiveCompression(header[len(Magic)+1])
	codec, err := compress.CreateArchiveCodec(kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidArchive, err)
	}

	return &Reader{r: br, kind: kind, codec: codec}, nil
}

// Codec returns the record codec of the archive.
func (r *Reader) Codec() format.ArchiveCompression {
	return r.kind
}

// Next returns the next record. It returns io.EOF after the last record.
//
// Returns:
//   - Record: The record with its document decompressed
//   - error: io.EOF at the end of the stream, ErrInvalidArchive for a truncated
//     or oversized record, ErrCompression if the body does not decompress,
//     ErrChecksum if the document does not match its checksum
func (r *Reader) Next() (Record, error) {
	if _, err := io.ReadFull(r.r, r.hdr[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return Record{}, io.EOF
		}

		return Record{}, fmt.Errorf("%w: record header: %w", errs.ErrInvalidArchive, err)
	}

	var h recordHeader
	h.parse(r.hdr[:])
	pos := region.ChunkPos{X: h.x, Z: h.z}

	if h.length > MaxRecordSize {
		return Record{}, fmt.Errorf("%w: %s declares %d bytes", errs.ErrInvalidArchive, pos, h.length)
	}

	body := make([]byte, h.length)
	if _, err := io.ReadFull(r.r, body); err != nil {
		return Record{}, fmt.Errorf("%w: %s body: %w", errs.ErrInvalidArchive, pos, err)
	}

	data, err := r.codec.Decompress(body)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %w: %s %s: %w", errs.ErrCompression, errs.ErrCodec, r.kind, pos, err)
	}
	if sum := hash.Sum(data); sum != h.checksum {
		return Record{}, fmt.Errorf("%w: %s has %016x, recorded %016x", errs.ErrChecksum, pos, sum, h.checksum)
	}

	var modified time.Time
	if h.timestamp != 0 {
		modified = time.Unix(int64(h.timestamp), 0)
	}

	return Record{Pos: pos, Modified: modified, Data: data}, nil
}
