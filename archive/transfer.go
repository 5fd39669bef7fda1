package archive

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/arloliu/anvil/region"
)

// Source is a chunk store that can be exported. store.ChunkStore implements it.
type Source interface {
	Regions() ([]region.RegionPos, error)
	Entries(rp region.RegionPos) ([]region.Entry, error)
	LoadRaw(pos region.ChunkPos) ([]byte, error)
}

// Sink is a chunk store that can be imported into. store.ChunkStore implements it.
type Sink interface {
	SaveRaw(pos region.ChunkPos, data []byte) error
	SaveRawAt(pos region.ChunkPos, data []byte, modified time.Time) error
}

// Export writes every chunk stored in src to w, region by region in local
// index order. Documents are archived as stored, whatever their status.
//
// Returns:
//   - int: The number of records written
//   - error: The first load or write failure
func Export(src Source, w io.Writer, opts ...WriterOption) (int, error) {
	aw, err := NewWriter(w, opts...)
	if err != nil {
		return 0, err
	}

	regions, err := src.Regions()
	if err != nil {
		return 0, err
	}

	for _, rp := range regions {
		entries, err := src.Entries(rp)
		if err != nil {
			return aw.Count(), fmt.Errorf("export %s: %w", rp, err)
		}

		for _, e := range entries {
			pos := rp.Chunk(e.Index)
			data, err := src.LoadRaw(pos)
			if err != nil {
				return aw.Count(), fmt.Errorf("export %s: %w", pos, err)
			}
			if err := aw.Add(Record{Pos: pos, Modified: e.Modified, Data: data}); err != nil {
				return aw.Count(), err
			}
		}
	}

	return aw.Count(), aw.Flush()
}

// Import stores every record of the archive read from r into dst. Records keep
// their archived modification time; records without one get the sink's clock.
//
// Returns:
//   - int: The number of records stored
//   - error: The first read or save failure
func Import(dst Sink, r io.Reader) (int, error) {
	ar, err := NewReader(r)
	if err != nil {
		return 0, err
	}

	n := 0
	for {
		rec, err := ar.Next()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, err
		}

		if rec.Modified.IsZero() {
			err = dst.SaveRaw(rec.Pos, rec.Data)
		} else {
			err = dst.SaveRawAt(rec.Pos, rec.Data, rec.Modified)
		}
		if err != nil {
			return n, fmt.Errorf("import %s: %w", rec.Pos, err)
		}
		n++
	}
}
