// Package trials compares the search modes over many independently seeded grids.
package trials

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/pdrpinto/gridnav"
)

var ErrLengthMismatch = errors.New("search modes disagree on path length")

// Config describes a batch of trials. Trial i uses seed BaseSeed+i.
type Config struct {
	Count               int
	Parallel            int
	Width               int
	Height              int
	ObstacleProbability float64
	BaseSeed            int64
	Start               gridnav.Cell
	End                 gridnav.Cell
}

// Trial is the outcome of both modes on one grid.
type Trial struct {
	Seed              int64
	Outcome           gridnav.Outcome
	Length            int
	HeuristicExpanded int
	UniformExpanded   int
}

// Summary aggregates a batch.
type Summary struct {
	Trials            []Trial
	Solved            int
	Unreachable       int
	HeuristicExpanded int
	UniformExpanded   int
}

// Run executes the trials with at most Parallel concurrent workers. Every
// trial generates its own grid, so no grid is shared between goroutines.
func Run(ctx context.Context, cfg Config, logger *slog.Logger) (Summary, error) {
	if cfg.Count <= 0 {
		return Summary{}, nil
	}
	if logger == nil {
		logger = slog.Default()
	}

	trials := make([]Trial, cfg.Count)
	group, ctx := errgroup.WithContext(ctx)
	if cfg.Parallel > 0 {
		group.SetLimit(cfg.Parallel)
	}

	for i := 0; i < cfg.Count; i++ {
		seed := cfg.BaseSeed + int64(i)
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			trial, err := runTrial(cfg, seed)
			if err != nil {
				return err
			}
			trials[i] = trial
			logger.Debug("trial finished", "seed", seed, "outcome", trial.Outcome, "length", trial.Length)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return Summary{}, err
	}

	summary := Summary{Trials: trials}
	for _, trial := range trials {
		if trial.Outcome == gridnav.Success {
			summary.Solved++
		} else {
			summary.Unreachable++
		}
		summary.HeuristicExpanded += trial.HeuristicExpanded
		summary.UniformExpanded += trial.UniformExpanded
	}

	return summary, nil
}

func runTrial(cfg Config, seed int64) (Trial, error) {
	grid, err := gridnav.GenerateSeeded(cfg.Width, cfg.Height, cfg.ObstacleProbability, seed)
	if err != nil {
		return Trial{}, err
	}

	heuristic, err := gridnav.Search(grid, cfg.Start, cfg.End, gridnav.Heuristic)
	if err != nil {
		return Trial{}, fmt.Errorf("trial seed %d: %w", seed, err)
	}
	uniform, err := gridnav.Search(grid, cfg.Start, cfg.End, gridnav.Uniform)
	if err != nil {
		return Trial{}, fmt.Errorf("trial seed %d: %w", seed, err)
	}
	if len(heuristic.Path) != len(uniform.Path) {
		return Trial{}, fmt.Errorf("trial seed %d: astar %d, dijkstra %d: %w",
			seed, len(heuristic.Path), len(uniform.Path), ErrLengthMismatch)
	}

	return Trial{
		Seed:              seed,
		Outcome:           heuristic.Outcome,
		Length:            len(heuristic.Path),
		HeuristicExpanded: heuristic.Expanded,
		UniformExpanded:   uniform.Expanded,
	}, nil
}
