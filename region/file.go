package region

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/arloliu/anvil/errs"
	"github.com/arloliu/anvil/format"
	"github.com/arloliu/anvil/internal/options"
	"github.com/arloliu/anvil/internal/pool"
)

// File is one open region file session. The header tables are read once on open
// and kept in memory; every Write rewrites them whole at offset 0.
//
// A File is not safe for concurrent use. Callers serialize writes per region and
// must not interleave reads with a write to the same region.
type File struct {
	f        *os.File
	path     string
	header   Header
	size     int64
	writable bool
	now      func() time.Time
}

// FileOption configures a File.
type FileOption = options.Option[*File]

// WithClock sets the clock used for timestamp entries.
func WithClock(now func() time.Time) FileOption {
	return options.New(func(f *File) error {
		if now == nil {
			return fmt.Errorf("%w: nil clock", errs.ErrInvalidOption)
		}
		f.now = now

		return nil
	})
}

// Entry describes one present chunk of a region file.
type Entry struct {
	Index    int
	Location LocationEntry
	Modified time.Time
}

// Open opens an existing region file for reading. A missing file yields an error
// matching fs.ErrNotExist.
//
// An empty file reads as a region without chunks; a file holding a partial header
// fails with ErrRegionInvalid.
func Open(path string, opts ...FileOption) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrIO, err)
	}

	return newFile(f, path, false, opts)
}

// OpenWritable opens a region file for reading and writing, creating it if needed.
// The header tables of a file shorter than HeaderSize start out zeroed.
func OpenWritable(path string, opts ...FileOption) (*File, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrIO, err)
	}

	return newFile(f, path, true, opts)
}

func newFile(f *os.File, path string, writable bool, opts []FileOption) (*File, error) {
	rf := &File{f: f, path: path, writable: writable, now: time.Now}
	if err := options.Apply(rf, opts...); err != nil {
		_ = f.Close()
		return nil, err
	}

	if err := rf.loadHeader(); err != nil {
		_ = f.Close()
		return nil, err
	}

	return rf, nil
}

func (rf *File) loadHeader() error {
	info, err := rf.f.Stat()
	if err != nil {
		return fmt.Errorf("%w: stat %s: %w", errs.ErrIO, rf.path, err)
	}
	rf.size = info.Size()

	if rf.size < HeaderSize {
		if rf.size > 0 && !rf.writable {
			return fmt.Errorf("%w: %s is %d bytes, shorter than its header", errs.ErrRegionInvalid, rf.path, rf.size)
		}
		rf.header = Header{}

		return nil
	}

	buf := make([]byte, HeaderSize)
	if _, err := rf.f.ReadAt(buf, 0); err != nil {
		return fmt.Errorf("%w: read header of %s: %w", errs.ErrIO, rf.path, err)
	}

	return rf.header.Parse(buf)
}

// Path returns the file's path.
func (rf *File) Path() string {
	return rf.path
}

// Size returns the current file size in bytes.
func (rf *File) Size() int64 {
	return rf.size
}

// Location returns the location entry of a local index.
func (rf *File) Location(index int) LocationEntry {
	return rf.header.Locations[index]
}

// Timestamp returns the last-write time of a local index.
func (rf *File) Timestamp(index int) time.Time {
	return time.Unix(int64(rf.header.Timestamps[index]), 0)
}

// Entries lists every present chunk in local index order.
func (rf *File) Entries() []Entry {
	entries := make([]Entry, 0, EntryCount)
	for i, loc := range rf.header.Locations {
		if loc.IsEmpty() {
			continue
		}
		entries = append(entries, Entry{
			Index:    i,
			Location: loc,
			Modified: rf.Timestamp(i),
		})
	}

	return entries
}

// Read returns the compressed body stored at a local index and the scheme byte
// that precedes it.
//
// Returns:
//   - []byte: The compressed body, owned by the caller
//   - format.CompressionType: The stored scheme byte, not validated
//   - error: ErrChunkNotExist for an empty entry, ErrRegionInvalid when the run
//     lies outside the file or overlaps the header, ErrInvalidHeader when the
//     payload length does not fit the run, ErrIO on read failure
func (rf *File) Read(index int) ([]byte, format.CompressionType, error) {
	if err := checkIndex(index); err != nil {
		return nil, 0, err
	}

	loc := rf.header.Locations[index]
	if loc.IsEmpty() {
		return nil, 0, fmt.Errorf("%w: index %d of %s", errs.ErrChunkNotExist, index, rf.path)
	}
	if loc.Offset < FirstDataSector || loc.Sectors == 0 {
		return nil, 0, fmt.Errorf("%w: index %d has run [%d, %d)", errs.ErrRegionInvalid, index, loc.Offset, loc.End())
	}

	start, length := loc.ByteOffset(), loc.ByteLength()
	if start+length > rf.size {
		return nil, 0, fmt.Errorf("%w: index %d run ends at byte %d, file is %d bytes",
			errs.ErrRegionInvalid, index, start+length, rf.size)
	}

	run := make([]byte, length)
	if _, err := rf.f.ReadAt(run, start); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, 0, fmt.Errorf("%w: index %d: %w", errs.ErrRegionInvalid, index, err)
		}

		return nil, 0, fmt.Errorf("%w: read index %d: %w", errs.ErrIO, index, err)
	}

	var ph PayloadHeader
	if err := ph.Parse(run); err != nil {
		return nil, 0, err
	}
	if ph.Length == 0 || int64(ph.BodyLen()) > length-PayloadHeaderSize {
		return nil, 0, fmt.Errorf("%w: index %d declares %d bytes in a %d byte run",
			errs.ErrInvalidHeader, index, ph.Length, length)
	}

	return run[PayloadHeaderSize : PayloadHeaderSize+ph.BodyLen()], ph.Scheme, nil
}

// Write stores a compressed body at a local index.
//
// The existing run is reused when it is large enough; otherwise FindFreeSector
// places the payload. The header tables are rewritten at offset 0 before the
// payload is written, zero-padded to the sector boundary, and the file is synced.
//
// Returns:
//   - error: ErrChunkTooLarge when the payload needs more than MaxSectorCount
//     sectors, ErrIO on write failure or when the file is read-only
func (rf *File) Write(index int, scheme format.CompressionType, body []byte) error {
	if err := checkIndex(index); err != nil {
		return err
	}
	if !rf.writable {
		return fmt.Errorf("%w: %s is open read-only", errs.ErrIO, rf.path)
	}

	required := SectorsFor(len(body))
	if required > MaxSectorCount {
		return fmt.Errorf("%w: %d bytes need %d sectors", errs.ErrChunkTooLarge, len(body), required)
	}

	current := rf.header.Locations[index]
	offset := current.Offset
	if int(current.Sectors) < required {
		offset = FindFreeSector(&rf.header.Locations, required)
	}
	if offset < FirstDataSector {
		panic(fmt.Sprintf("region: sector %d allocated for index %d of %s overlaps the header", offset, index, rf.path))
	}
	if offset+uint32(required) > MaxSectorOffset {
		return fmt.Errorf("%w: %s has no sector offset left for %d sectors", errs.ErrIO, rf.path, required)
	}

	rf.header.Set(index, LocationEntry{Offset: offset, Sectors: uint8(required)}, rf.now())

	if _, err := rf.f.WriteAt(rf.header.Bytes(), 0); err != nil {
		return fmt.Errorf("%w: write header of %s: %w", errs.ErrIO, rf.path, err)
	}

	buf := pool.GetPayloadBuffer()
	defer pool.PutPayloadBuffer(buf)

	buf.B = NewPayloadHeader(scheme, len(body)).AppendBytes(buf.B)
	_, _ = buf.Write(body)
	buf.ExtendOrGrow(required*SectorSize - buf.Len())

	pos := int64(offset) * SectorSize
	if _, err := rf.f.WriteAt(buf.Bytes(), pos); err != nil {
		return fmt.Errorf("%w: write index %d of %s: %w", errs.ErrIO, index, rf.path, err)
	}

	rf.size = max(rf.size, HeaderSize, pos+int64(buf.Len()))

	if err := rf.f.Sync(); err != nil {
		return fmt.Errorf("%w: sync %s: %w", errs.ErrIO, rf.path, err)
	}

	return nil
}

// Close releases the file handle.
func (rf *File) Close() error {
	if err := rf.f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", errs.ErrIO, rf.path, err)
	}

	return nil
}

func checkIndex(index int) error {
	if index < 0 || index >= EntryCount {
		return fmt.Errorf("%w: local index %d out of range", errs.ErrInvalidOption, index)
	}

	return nil
}
