package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func recompressCmd(g *globals) *cli.Command {
	var scheme string

	return &cli.Command{
		Name:  "recompress",
		Usage: "Rewrite every stored chunk with another compression scheme",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "scheme",
				Usage:       "target scheme (zlib, gzip, lz4, none)",
				Required:    true,
				Destination: &scheme,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			src, err := g.openStore("")
			if err != nil {
				return err
			}
			dst, err := g.openStore(scheme)
			if err != nil {
				return err
			}

			regions, err := src.Regions()
			if err != nil {
				return err
			}

			n := 0
			for _, rp := range regions {
				entries, err := src.Entries(rp)
				if err != nil {
					return err
				}
				for _, e := range entries {
					pos := rp.Chunk(e.Index)
					data, err := src.LoadRaw(pos)
					if err != nil {
						return fmt.Errorf("recompress %s: %w", pos, err)
					}
					// keep the original modification time
					if err := dst.SaveRawAt(pos, data, e.Modified); err != nil {
						return fmt.Errorf("recompress %s: %w", pos, err)
					}
					n++
				}
				g.log.Debug("region recompressed", "region", rp.String(), "chunks", len(entries))
			}

			_, err = fmt.Fprintf(cmd.Root().Writer, "%d chunks rewritten with %s\n", n, dst.Compression())

			return err
		},
	}
}
