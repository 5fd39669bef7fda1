package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

var errLevel = errors.New("level out of range")

type writerConfig struct {
	scheme string
	level  int
	calls  []string
}

func withScheme(s string) Option[*writerConfig] {
	return NoError(func(c *writerConfig) {
		c.scheme = s
		c.calls = append(c.calls, "scheme")
	})
}

func withLevel(level int) Option[*writerConfig] {
	return New(func(c *writerConfig) error {
		if level < 0 || level > 9 {
			return errLevel
		}
		c.level = level
		c.calls = append(c.calls, "level")

		return nil
	})
}

func TestApply(t *testing.T) {
	tests := []struct {
		name      string
		opts      []Option[*writerConfig]
		expected  writerConfig
		expectErr error
	}{
		{
			name:     "no options",
			expected: writerConfig{scheme: "zlib", level: 6},
		},
		{
			name:     "applied in order",
			opts:     []Option[*writerConfig]{withLevel(1), withScheme("gzip"), withLevel(9)},
			expected: writerConfig{scheme: "gzip", level: 9, calls: []string{"level", "scheme", "level"}},
		},
		{
			name:     "nil option skipped",
			opts:     []Option[*writerConfig]{nil, withScheme("lz4")},
			expected: writerConfig{scheme: "lz4", level: 6, calls: []string{"scheme"}},
		},
		{
			name:      "stops at first error",
			opts:      []Option[*writerConfig]{withScheme("none"), withLevel(12), withScheme("gzip")},
			expected:  writerConfig{scheme: "none", level: 6, calls: []string{"scheme"}},
			expectErr: errLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &writerConfig{scheme: "zlib", level: 6}
			err := Apply(cfg, tt.opts...)
			if tt.expectErr != nil {
				require.ErrorIs(t, err, tt.expectErr)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, tt.expected, *cfg)
		})
	}
}

func TestNew_PropagatesError(t *testing.T) {
	cfg := &writerConfig{}
	require.ErrorIs(t, withLevel(-1).apply(cfg), errLevel)
	require.NoError(t, withLevel(3).apply(cfg))
	require.Equal(t, 3, cfg.level)
}

func TestNoError_NeverFails(t *testing.T) {
	cfg := &writerConfig{}
	require.NoError(t, withScheme("gzip").apply(cfg))
	require.Equal(t, "gzip", cfg.scheme)
}
