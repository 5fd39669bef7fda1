package main

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/arloliu/anvil/block"
	"github.com/arloliu/anvil/chunk"
	"github.com/arloliu/anvil/region"
)

type chunkSummary struct {
	X           int32            `json:"x"`
	Z           int32            `json:"z"`
	Status      string           `json:"status"`
	DataVersion int32            `json:"data_version"`
	LastUpdate  int64            `json:"last_update"`
	Heightmaps  []string         `json:"heightmaps,omitempty"`
	Sections    []sectionSummary `json:"sections"`
}

type sectionSummary struct {
	Y       int            `json:"y"`
	NonAir  int            `json:"non_air"`
	Palette map[string]int `json:"palette"`
}

func dumpCmd(g *globals) *cli.Command {
	var x, z int

	return &cli.Command{
		Name:  "dump",
		Usage: "Print a decoded chunk summary as JSON",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "x", Usage: "chunk x coordinate", Required: true, Destination: &x},
			&cli.IntFlag{Name: "z", Usage: "chunk z coordinate", Required: true, Destination: &z},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			st, err := g.openStore("")
			if err != nil {
				return err
			}

			pos := region.ChunkPos{X: int32(x), Z: int32(z)}
			c, err := st.LoadChunk(pos)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(summarize(c, st.Registry()), "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.Root().Writer, string(out))

			return err
		},
	}
}

// summarize counts the block states of every present section.
func summarize(c *chunk.Chunk, reg block.Registry) chunkSummary {
	s := chunkSummary{
		X:           c.Pos.X,
		Z:           c.Pos.Z,
		Status:      c.Status.String(),
		DataVersion: c.DataVersion,
		LastUpdate:  c.LastUpdate,
		Heightmaps:  slices.Sorted(maps.Keys(c.Heightmaps)),
		Sections:    []sectionSummary{},
	}

	for i, sec := range c.Sections {
		if sec == nil {
			continue
		}

		ss := sectionSummary{Y: i + chunk.MinSectionY, Palette: make(map[string]int)}
		for _, id := range sec.States {
			state, ok := reg.State(id)
			if !ok {
				ss.Palette[fmt.Sprintf("#%d", id)]++
				continue
			}
			if !state.IsAir() {
				ss.NonAir++
			}
			ss.Palette[state.Key()]++
		}
		s.Sections = append(s.Sections, ss)
	}

	return s
}
