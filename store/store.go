package store

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/arloliu/anvil/block"
	"github.com/arloliu/anvil/chunk"
	"github.com/arloliu/anvil/compress"
	"github.com/arloliu/anvil/errs"
	"github.com/arloliu/anvil/format"
	"github.com/arloliu/anvil/internal/logger"
	"github.com/arloliu/anvil/internal/options"
	"github.com/arloliu/anvil/region"
)

// ChunkStore loads and saves chunks in the region files of one directory.
//
// Every operation opens the region file it needs and closes it before
// returning. Operations on one region are serialized by a per-region lock:
// reads share it, writes hold it exclusively. Distinct regions never contend.
type ChunkStore struct {
	dir    string
	cfg    *Config
	codecs *compress.Codecs
	log    logger.Logger

	locksMu sync.Mutex
	locks   map[region.RegionPos]*sync.RWMutex

	reads singleflight.Group
}

// New creates a store over the region files in dir. The directory is created
// by the first write, not here.
//
// Returns:
//   - *ChunkStore: The store
//   - error: ErrInvalidOption for a bad option or compression level
func New(dir string, opts ...Option) (*ChunkStore, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.registry == nil {
		cfg.registry = block.NewInternRegistry()
	}

	codecs, err := compress.NewCodecs(cfg.level)
	if err != nil {
		return nil, err
	}

	return &ChunkStore{
		dir:    dir,
		cfg:    cfg,
		codecs: codecs,
		log:    cfg.log.With("dir", dir),
		locks:  make(map[region.RegionPos]*sync.RWMutex),
	}, nil
}

// Dir returns the region directory.
func (s *ChunkStore) Dir() string {
	return s.dir
}

// Registry returns the block-state registry used by LoadChunk and SaveChunk.
func (s *ChunkStore) Registry() block.Registry {
	return s.cfg.registry
}

// Compression returns the scheme used for writes.
func (s *ChunkStore) Compression() format.CompressionType {
	return s.cfg.compression
}

// Logger returns the store's logger.
func (s *ChunkStore) Logger() logger.Logger {
	return s.log
}

// RegionPath returns the path of a region's file.
func (s *ChunkStore) RegionPath(rp region.RegionPos) string {
	return filepath.Join(s.dir, rp.FileName())
}

// LoadChunk reads and decodes the chunk at pos.
//
// Returns:
//   - *chunk.Chunk: A chunk owned by the caller
//   - error: ErrChunkNotExist when nothing is stored, the region file is
//     missing or the chunk is not fully generated; otherwise one of
//     ErrRegionInvalid, ErrInvalidHeader, ErrCompression, ErrParsing, ErrIO
func (s *ChunkStore) LoadChunk(pos region.ChunkPos) (*chunk.Chunk, error) {
	data, err := s.LoadRaw(pos)
	if err != nil {
		return nil, err
	}

	return chunk.Unmarshal(data, pos, s.cfg.registry, s.log)
}

// SaveChunk encodes c and stores it at pos, replacing any previous payload.
// The document records pos as the chunk coordinate.
//
// Returns:
//   - error: ErrSerializing, ErrCompression, ErrChunkTooLarge or ErrIO
func (s *ChunkStore) SaveChunk(pos region.ChunkPos, c *chunk.Chunk) error {
	placed := *c
	placed.Pos = pos

	data, err := chunk.Marshal(&placed, s.cfg.registry)
	if err != nil {
		return err
	}

	return s.SaveRaw(pos, data)
}

// LoadRaw returns the decompressed chunk document stored at pos without
// checking its status.
//
// Concurrent loads of the same position share a single file read; each
// caller receives its own copy of the bytes.
func (s *ChunkStore) LoadRaw(pos region.ChunkPos) ([]byte, error) {
	v, err, shared := s.reads.Do(pos.String(), func() (any, error) {
		return s.readRaw(pos)
	})
	if err != nil {
		return nil, err
	}

	data, _ := v.([]byte)
	if shared {
		return bytes.Clone(data), nil
	}

	return data, nil
}

func (s *ChunkStore) readRaw(pos region.ChunkPos) ([]byte, error) {
	rp := pos.Region()
	lock := s.regionLock(rp)
	lock.RLock()
	defer lock.RUnlock()

	rf, err := region.Open(s.RegionPath(rp))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s, region %s has no file", errs.ErrChunkNotExist, pos, rp)
		}

		return nil, err
	}
	defer func() { _ = rf.Close() }()

	body, scheme, err := rf.Read(pos.LocalIndex())
	if err != nil {
		if !errors.Is(err, errs.ErrChunkNotExist) {
			s.log.Error("corrupt chunk entry", "chunk", pos.String(), "region", rp.String(), "error", err)
		}

		return nil, err
	}

	data, err := s.codecs.Decompress(body, scheme)
	if err != nil {
		s.log.Error("chunk payload does not decompress", "chunk", pos.String(), "scheme", scheme.String(), "error", err)
		return nil, fmt.Errorf("%s: %w", pos, err)
	}

	return data, nil
}

// SaveRaw compresses an uncompressed chunk document with the store's scheme
// and writes it at pos, creating the directory and region file when needed.
func (s *ChunkStore) SaveRaw(pos region.ChunkPos, data []byte) error {
	return s.saveRaw(pos, data, s.cfg.now)
}

// SaveRawAt is SaveRaw with an explicit modification time for the timestamp
// table, used when restoring chunks from an archive.
func (s *ChunkStore) SaveRawAt(pos region.ChunkPos, data []byte, modified time.Time) error {
	return s.saveRaw(pos, data, func() time.Time { return modified })
}

func (s *ChunkStore) saveRaw(pos region.ChunkPos, data []byte, now func() time.Time) error {
	compressed, err := s.codecs.Compress(data, s.cfg.compression)
	if err != nil {
		return fmt.Errorf("%s: %w", pos, err)
	}

	rp := pos.Region()
	lock := s.regionLock(rp)
	lock.Lock()
	defer lock.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrIO, err)
	}

	path := s.RegionPath(rp)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		s.log.Debug("creating region file", "region", rp.String(), "path", path)
	}

	rf, err := region.OpenWritable(path, region.WithClock(now))
	if err != nil {
		return err
	}

	if err := rf.Write(pos.LocalIndex(), s.cfg.compression, compressed); err != nil {
		_ = rf.Close()
		return fmt.Errorf("%s: %w", pos, err)
	}

	return rf.Close()
}

// Regions lists the regions that have a file in the store directory.
// A missing directory holds no regions.
func (s *ChunkStore) Regions() ([]region.RegionPos, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("%w: %w", errs.ErrIO, err)
	}

	regions := make([]region.RegionPos, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		rp, err := region.ParseFileName(e.Name())
		if err != nil {
			continue
		}
		regions = append(regions, rp)
	}

	return regions, nil
}

// ChunkPositions lists the chunks stored in a region, in local index order.
// A region without a file has none.
func (s *ChunkStore) ChunkPositions(rp region.RegionPos) ([]region.ChunkPos, error) {
	entries, err := s.Entries(rp)
	if err != nil {
		return nil, err
	}

	positions := make([]region.ChunkPos, len(entries))
	for i, e := range entries {
		positions[i] = rp.Chunk(e.Index)
	}

	return positions, nil
}

// Entries returns the present location entries of a region.
func (s *ChunkStore) Entries(rp region.RegionPos) ([]region.Entry, error) {
	lock := s.regionLock(rp)
	lock.RLock()
	defer lock.RUnlock()

	rf, err := region.Open(s.RegionPath(rp))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, err
	}
	defer func() { _ = rf.Close() }()

	return rf.Entries(), nil
}

// regionLock returns the lock of a region, creating it on first use.
func (s *ChunkStore) regionLock(rp region.RegionPos) *sync.RWMutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	lock, ok := s.locks[rp]
	if !ok {
		lock = &sync.RWMutex{}
		s.locks[rp] = lock
	}

	return lock
}
