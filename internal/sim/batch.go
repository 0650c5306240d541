package sim

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/cory-johannsen/wavebattle/internal/game/battle"
)

// BuildFunc creates the core and policy for run i. It is called from worker
// goroutines and must not share mutable state between runs.
type BuildFunc func(ctx context.Context, i int) (*battle.Core, Policy, []RunOption, error)

// RunBatch runs n independent simulations with at most parallelism in flight.
//
// Precondition: n >= 0, parallelism >= 1, maxTicks > 0.
// Postcondition: On success results[i] is run i's result. The first failing
// run cancels the rest and its error is returned.
func RunBatch(ctx context.Context, n, parallelism, maxTicks int, build BuildFunc) ([]Result, error) {
	if parallelism < 1 {
		return nil, fmt.Errorf("sim: parallelism must be >= 1, got %d", parallelism)
	}
	results := make([]Result, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for i := range n {
		g.Go(func() error {
			core, policy, opts, err := build(gctx, i)
			if err != nil {
				return fmt.Errorf("run %d: building: %w", i, err)
			}
			res, err := Run(gctx, core, policy, maxTicks, opts...)
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Summary aggregates a batch.
type Summary struct {
	Runs      int
	Won       int
	Lost      int
	Capped    int
	MeanTicks float64
	Rejected  int
}

// WinRate is Won/Runs, or zero for an empty batch.
func (s Summary) WinRate() float64 {
	if s.Runs == 0 {
		return 0
	}
	return float64(s.Won) / float64(s.Runs)
}

// Summarize folds results into a Summary.
func Summarize(results []Result) Summary {
	s := Summary{Runs: len(results)}
	total := 0
	for _, r := range results {
		switch r.Outcome {
		case Won:
			s.Won++
		case Lost:
			s.Lost++
		default:
			s.Capped++
		}
		total += r.Ticks
		s.Rejected += r.Rejected
	}
	if s.Runs > 0 {
		s.MeanTicks = float64(total) / float64(s.Runs)
	}
	return s
}
