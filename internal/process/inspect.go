package process

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/pranshuparmar/pinfo/internal/logging"
	"github.com/pranshuparmar/pinfo/pkg/model"
)

type Options struct {
	ReadEnvironment bool
	// Concurrency caps parallel inspections. Zero means GOMAXPROCS.
	Concurrency int
	// Inspect overrides the platform reader.
	Inspect Inspector
}

// InspectAll snapshots every pid concurrently, each with its own inspection
// context. Results are in the order of pids. Reads themselves cannot be
// interrupted; cancellation is observed between pids.
func InspectAll(ctx context.Context, pids []int, opts Options) ([]model.Process, error) {
	inspect := opts.Inspect
	if inspect == nil {
		inspect = Live(opts.ReadEnvironment)
	}
	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	out := make([]model.Process, len(pids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, pid := range pids {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = inspect(pid)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logging.New("process").Debug().Int("count", len(pids)).Int("limit", limit).Msg("inspected processes")
	return out, nil
}
