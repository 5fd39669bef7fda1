package main

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/arloliu/anvil/format"
	"github.com/arloliu/anvil/internal/logger"
	"github.com/arloliu/anvil/store"
)

// globals holds the resolved global settings shared by every command.
type globals struct {
	dir         string
	configPath  string
	logLevel    string
	logFormat   string
	compression string
	level       int

	log logger.Logger
}

func newApp(out, errOut io.Writer) *cli.Command {
	g := &globals{}

	return &cli.Command{
		Name:      "anvilctl",
		Usage:     "Inspect and maintain Anvil region files",
		Writer:    out,
		ErrWriter: errOut,
		Flags:     g.flags(),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return ctx, g.resolve(cmd, errOut)
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			infoCmd(g),
			dumpCmd(g),
			verifyCmd(g),
			recompressCmd(g),
			exportCmd(g),
			importCmd(g),
		},
	}
}

func (g *globals) flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "dir",
			Aliases:     []string{"d"},
			Usage:       "region directory of the world",
			Value:       ".",
			Sources:     cli.EnvVars("ANVIL_DIR"),
			Destination: &g.dir,
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to config.yaml (default $XDG_CONFIG_HOME/anvilctl/config.yaml)",
			Destination: &g.configPath,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "warn",
			Destination: &g.logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (text, json, pretty)",
			Value:       "pretty",
			Destination: &g.logFormat,
		},
		&cli.StringFlag{
			Name:        "compression",
			Usage:       "scheme for writes (zlib, gzip, lz4, none)",
			Value:       "zlib",
			Destination: &g.compression,
		},
		&cli.IntFlag{
			Name:        "level",
			Usage:       "compression level for zlib, gzip and lz4 writes",
			Value:       6,
			Destination: &g.level,
		},
	}
}

// resolve loads the config file, lets explicitly set flags win over it and
// builds the logger.
func (g *globals) resolve(cmd *cli.Command, errOut io.Writer) error {
	cfg, err := loadConfig(g.configPath)
	if err != nil {
		return err
	}
	applyConfig(cmd, cfg, g)

	g.log, err = logger.NewWithFormat(errOut, g.logFormat, logger.ParseLevel(g.logLevel))

	return err
}

// openStore opens the world's store, writing with scheme when it is non-empty
// and with the global scheme otherwise.
func (g *globals) openStore(scheme string) (*store.ChunkStore, error) {
	if scheme == "" {
		scheme = g.compression
	}
	compression, ok := format.ParseCompression(scheme)
	if !ok {
		return nil, fmt.Errorf("unknown compression scheme %q", scheme)
	}

	return store.New(g.dir,
		store.WithCompression(compression),
		store.WithCompressionLevel(g.level),
		store.WithLogger(g.log),
	)
}
