package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/arloliu/anvil/region"
)

func infoCmd(g *globals) *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "List the entries of a region file",
		ArgsUsage: "<r.X.Z.mca>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return errors.New("info takes exactly one region file")
			}

			return printInfo(cmd, resolveRegionPath(g.dir, cmd.Args().First()))
		},
	}
}

// resolveRegionPath looks a bare file name up in the region directory.
func resolveRegionPath(dir, name string) string {
	if filepath.IsAbs(name) || filepath.Base(name) != name {
		return name
	}
	if _, err := os.Stat(name); err == nil {
		return name
	}

	return filepath.Join(dir, name)
}

func printInfo(cmd *cli.Command, path string) error {
	rp, err := region.ParseFileName(filepath.Base(path))
	if err != nil {
		return err
	}

	rf, err := region.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = rf.Close() }()

	out := cmd.Root().Writer
	entries := rf.Entries()
	_, _ = fmt.Fprintf(out, "%s  %s  %d bytes  %d chunks\n", rp, path, rf.Size(), len(entries))

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	_, _ = fmt.Fprintln(tw, "index\tx\tz\toffset\tsectors\tmodified\tscheme\t")
	for _, e := range entries {
		pos := rp.Chunk(e.Index)
		var scheme string
		if _, s, err := rf.Read(e.Index); err != nil {
			scheme = "error: " + err.Error()
		} else {
			scheme = s.String()
		}
		_, _ = fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t%s\t%s\t\n",
			e.Index, pos.X, pos.Z, e.Location.Offset, e.Location.Sectors,
			e.Modified.UTC().Format(time.RFC3339), scheme)
	}

	return tw.Flush()
}
