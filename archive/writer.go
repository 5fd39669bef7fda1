package archive

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/arloliu/anvil/compress"
	"github.com/arloliu/anvil/errs"
	"github.com/arloliu/anvil/format"
	"github.com/arloliu/anvil/internal/hash"
	"github.com/arloliu/anvil/internal/options"
)

// Writer appends records to an archive stream.
// A Writer is not safe for concurrent use.
type Writer struct {
	w     *bufio.Writer
	kind  format.ArchiveCompression
	codec compress.Codec
	hdr   []byte
	count int
}

// WriterOption configures a Writer.
type WriterOption = options.Option[*Writer]

// WithCodec selects the record codec. The default is format.ArchiveZstd.
func WithCodec(kind format.ArchiveCompression) WriterOption {
	return options.New(func(w *Writer) error {
		codec, err := compress.CreateArchiveCodec(kind)
		if err != nil {
			return fmt.Errorf("%w: %w", errs.ErrInvalidOption, err)
		}
		w.kind, w.codec = kind, codec

		return nil
	})
}

// NewWriter writes the stream header to w and returns a Writer for its records.
// Records are buffered; call Flush when done.
func NewWriter(w io.Writer, opts ...WriterOption) (*Writer, error) {
	aw := &Writer{
		w:     bufio.NewWriter(w),
		kind:  format.ArchiveZstd,
		codec: compress.NewZstdCompressor(),
		hdr:   make([]byte, 0, RecordHeaderSize),
	}
	if err := options.Apply(aw, opts...); err != nil {
		return nil, err
	}

	header := append([]byte(Magic), Version, uint8(aw.kind))
	if _, err := aw.w.Write(header); err != nil {
		return nil, fmt.Errorf("%w: write archive header: %w", errs.ErrIO, err)
	}

	return aw, nil
}

// Codec returns the record codec of the archive.
func (w *Writer) Codec() format.ArchiveCompression {
	return w.kind
}

// Count returns the number of records added so far.
func (w *Writer) Count() int {
	return w.count
}

// Add compresses rec.Data and appends the record.
//
// Returns:
//   - error: ErrCompression if the codec fails, ErrInvalidArchive if the
//     document exceeds compress.MaxDocumentSize or the compressed body exceeds
//     MaxRecordSize, ErrIO on write failure
func (w *Writer) Add(rec Record) error {
	if len(rec.Data) > compress.MaxDocumentSize {
		return fmt.Errorf("%w: %s document is %d bytes", errs.ErrInvalidArchive, rec.Pos, len(rec.Data))
	}

	body, err := w.codec.Compress(rec.Data)
	if err != nil {
		return fmt.Errorf("%w: %w: %s %s: %w", errs.ErrCompression, errs.ErrCodec, w.kind, rec.Pos, err)
	}
	if len(body) > MaxRecordSize {
		return fmt.Errorf("%w: %s compresses to %d bytes", errs.ErrInvalidArchive, rec.Pos, len(body))
	}

	ts := rec.Modified.Unix()
	if rec.Modified.IsZero() || ts < 0 {
		ts = 0
	}

	h := recordHeader{
		x:         rec.Pos.X,
		z:         rec.Pos.Z,
		timestamp: uint32(min(ts, math.MaxUint32)),
		length:    uint32(len(body)),
		checksum:  hash.Sum(rec.Data),
	}

	w.hdr = h.appendBytes(w.hdr[:0])
	if _, err := w.w.Write(w.hdr); err != nil {
		return fmt.Errorf("%w: write record %s: %w", errs.ErrIO, rec.Pos, err)
	}
	if _, err := w.w.Write(body); err != nil {
		return fmt.Errorf("%w: write record %s: %w", errs.ErrIO, rec.Pos, err)
	}
	w.count++

	return nil
}

// Flush writes any buffered records to the underlying writer.
func (w *Writer) Flush() error {
	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("%w: flush archive: %w", errs.ErrIO, err)
	}

	return nil
}
