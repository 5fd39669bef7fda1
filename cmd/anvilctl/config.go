package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config is the anvilctl configuration file. Pointer fields distinguish
// "not set" from zero values.
type Config struct {
	Dir              string `yaml:"dir"`
	LogLevel         string `yaml:"log_level"`
	LogFormat        string `yaml:"log_format"`
	Compression      string `yaml:"compression"`
	CompressionLevel *int   `yaml:"compression_level"`
}

// defaultConfigPath returns $XDG_CONFIG_HOME/anvilctl/config.yaml, or the
// platform equivalent.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}

	return filepath.Join(dir, "anvilctl", "config.yaml")
}

// loadConfig reads the config file at path, or the default location when path
// is empty. A missing default file yields a zero Config; a missing explicit
// file is an error.
func loadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
		if path == "" {
			return Config{}, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Config{}, nil
		}

		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// applyConfig copies config values into g for every flag not set explicitly.
func applyConfig(cmd *cli.Command, cfg Config, g *globals) {
	if cfg.Dir != "" && !cmd.IsSet("dir") {
		g.dir = cfg.Dir
	}
	if cfg.LogLevel != "" && !cmd.IsSet("log-level") {
		g.logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !cmd.IsSet("log-format") {
		g.logFormat = cfg.LogFormat
	}
	if cfg.Compression != "" && !cmd.IsSet("compression") {
		g.compression = cfg.Compression
	}
	if cfg.CompressionLevel != nil && !cmd.IsSet("level") {
		g.level = *cfg.CompressionLevel
	}
}
