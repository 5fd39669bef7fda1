package store

import (
	"fmt"
	"time"

	"github.com/arloliu/anvil/block"
	"github.com/arloliu/anvil/compress"
	"github.com/arloliu/anvil/errs"
	"github.com/arloliu/anvil/format"
	"github.com/arloliu/anvil/internal/logger"
	"github.com/arloliu/anvil/internal/options"
)

// Config holds the settings of a ChunkStore.
type Config struct {
	compression format.CompressionType
	level       int
	log         logger.Logger
	registry    block.Registry
	now         func() time.Time
}

// Option configures a ChunkStore.
type Option = options.Option[*Config]

func defaultConfig() *Config {
	return &Config{
		compression: format.CompressionZLib,
		level:       compress.DefaultLevel,
		log:         logger.Nop(),
		now:         time.Now,
	}
}

// WithCompression sets the scheme used for writes. Reads always honor the
// scheme stored with each payload.
func WithCompression(scheme format.CompressionType) Option {
	return options.New(func(c *Config) error {
		canonical, ok := scheme.Canonical()
		if !ok {
			return fmt.Errorf("%w: write scheme %d", errs.ErrInvalidOption, scheme)
		}
		c.compression = canonical

		return nil
	})
}

// WithCompressionLevel sets the level for GZip and ZLib writes (0..9) and LZ4
// writes (clamped). It is ignored for None.
func WithCompressionLevel(level int) Option {
	return options.NoError(func(c *Config) {
		c.level = level
	})
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(log logger.Logger) Option {
	return options.NoError(func(c *Config) {
		if log == nil {
			log = logger.Nop()
		}
		c.log = log
	})
}

// WithRegistry sets the block-state registry shared by every load and save.
// Without it the store creates its own InternRegistry.
func WithRegistry(reg block.Registry) Option {
	return options.New(func(c *Config) error {
		if reg == nil {
			return fmt.Errorf("%w: nil registry", errs.ErrInvalidOption)
		}
		c.registry = reg

		return nil
	})
}

// WithClock sets the clock that stamps the timestamp table on writes.
func WithClock(now func() time.Time) Option {
	return options.New(func(c *Config) error {
		if now == nil {
			return fmt.Errorf("%w: nil clock", errs.ErrInvalidOption)
		}
		c.now = now

		return nil
	})
}
