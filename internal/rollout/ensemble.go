package rollout

import (
	"context"
	"fmt"
	"runtime"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/fishsim/internal/dynamo"
	"github.com/san-kum/fishsim/internal/env"
)

// Ensemble runs independent episodes concurrently. Every episode gets its
// own environment, policy and metrics from the factories, so nothing is
// shared between goroutines.
type Ensemble struct {
	NewEnv     func() (env.Environment, error)
	NewPolicy  func() (dynamo.Policy, error)
	NewMetrics func() []dynamo.Metric
	// Workers caps concurrency; zero means GOMAXPROCS.
	Workers int
	Log     logr.Logger
}

// Run plays n episodes with seeds seedStart, seedStart+1, ... and returns
// the results in seed order. The first error cancels the remaining
// episodes.
func (e *Ensemble) Run(ctx context.Context, n int, seedStart uint64) ([]*Result, error) {
	if n < 0 {
		return nil, fmt.Errorf("ensemble size %d: %w", n, dynamo.ErrParameterBounds)
	}
	workers := e.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	log := e.Log
	if log.GetSink() == nil {
		log = logr.Discard()
	}

	results := make([]*Result, n)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			fe, err := e.NewEnv()
			if err != nil {
				return fmt.Errorf("episode %d: environment: %w", i, err)
			}
			p, err := e.NewPolicy()
			if err != nil {
				return fmt.Errorf("episode %d: policy: %w", i, err)
			}

			r := NewRunner(WithLogger(log))
			if e.NewMetrics != nil {
				for _, m := range e.NewMetrics() {
					r.AddMetric(m)
				}
			}

			res, err := r.Run(ctx, fe, p, seedStart+uint64(i))
			if err != nil {
				return fmt.Errorf("episode %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// Returns extracts the episode returns in order, skipping missing results.
func Returns(results []*Result) []float64 {
	out := make([]float64, 0, len(results))
	for _, r := range results {
		if r != nil {
			out = append(out, r.Return)
		}
	}
	return out
}
