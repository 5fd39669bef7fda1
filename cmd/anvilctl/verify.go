package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/arloliu/anvil/errs"
	"github.com/arloliu/anvil/region"
	"github.com/arloliu/anvil/store"
)

var errVerifyFailed = errors.New("verification failed")

type verifyReport struct {
	mu       sync.Mutex
	checked  int
	partial  int
	failures map[region.ChunkPos]error
}

func (r *verifyReport) record(pos region.ChunkPos, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.checked++
	switch {
	case err == nil:
	case errors.Is(err, errs.ErrChunkNotExist):
		// stored but not fully generated
		r.partial++
	default:
		r.failures[pos] = err
	}
}

func verifyCmd(g *globals) *cli.Command {
	var jobs int

	return &cli.Command{
		Name:  "verify",
		Usage: "Load every stored chunk and report the ones that fail",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "jobs",
				Aliases:     []string{"j"},
				Usage:       "number of regions verified in parallel",
				Value:       runtime.NumCPU(),
				Destination: &jobs,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			st, err := g.openStore("")
			if err != nil {
				return err
			}

			report, err := verifyStore(ctx, st, jobs)
			if err != nil {
				return err
			}

			return printReport(cmd.Root().Writer, report)
		},
	}
}

// verifyStore loads every chunk of every region, one region per worker.
func verifyStore(ctx context.Context, st *store.ChunkStore, jobs int) (*verifyReport, error) {
	regions, err := st.Regions()
	if err != nil {
		return nil, err
	}

	report := &verifyReport{failures: make(map[region.ChunkPos]error)}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(jobs, 1))
	for _, rp := range regions {
		eg.Go(func() error {
			positions, err := st.ChunkPositions(rp)
			if err != nil {
				return fmt.Errorf("%s: %w", rp, err)
			}
			for _, pos := range positions {
				if err := ctx.Err(); err != nil {
					return err
				}
				_, err := st.LoadChunk(pos)
				report.record(pos, err)
			}

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return report, nil
}

func printReport(w io.Writer, report *verifyReport) error {
	red := color.New(color.FgRed)
	for pos, err := range report.failures {
		_, _ = red.Fprintf(w, "FAIL %s: %v\n", pos, err)
	}

	ok := report.checked - report.partial - len(report.failures)
	summary := fmt.Sprintf("%d chunks checked, %d ok, %d not fully generated, %d failed\n",
		report.checked, ok, report.partial, len(report.failures))

	if len(report.failures) > 0 {
		_, _ = red.Fprint(w, summary)
		return fmt.Errorf("%w: %d chunks", errVerifyFailed, len(report.failures))
	}
	_, _ = color.New(color.FgGreen).Fprint(w, summary)

	return nil
}
