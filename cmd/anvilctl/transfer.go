package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/arloliu/anvil/archive"
	"github.com/arloliu/anvil/format"
)

func exportCmd(g *globals) *cli.Command {
	var out, codec string

	return &cli.Command{
		Name:  "export",
		Usage: "Write every stored chunk to an archive",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "archive path", Required: true, Destination: &out},
			&cli.StringFlag{Name: "codec", Usage: "archive codec (zstd, s2, lz4, none)", Value: "zstd", Destination: &codec},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			kind, ok := format.ParseArchiveCompression(codec)
			if !ok {
				return fmt.Errorf("unknown archive codec %q", codec)
			}

			st, err := g.openStore("")
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}

			n, err := archive.Export(st, f, archive.WithCodec(kind))
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.Root().Writer, "%d chunks exported to %s (%s)\n", n, out, kind)

			return err
		},
	}
}

func importCmd(g *globals) *cli.Command {
	var in string

	return &cli.Command{
		Name:  "import",
		Usage: "Store every chunk of an archive, overwriting existing entries",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "in", Aliases: []string{"i"}, Usage: "archive path", Required: true, Destination: &in},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			st, err := g.openStore("")
			if err != nil {
				return err
			}

			f, err := os.Open(in)
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			n, err := archive.Import(st, f)
			if err != nil {
				return fmt.Errorf("after %d chunks: %w", n, err)
			}

			_, err = fmt.Fprintf(cmd.Root().Writer, "%d chunks imported from %s\n", n, in)

			return err
		},
	}
}
