package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
)

// Objective scores one parameter combination; higher is better.
type Objective func(ctx context.Context, params map[string]float64) (float64, error)

// GridSearch evaluates every combination of the given parameter values.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, fmt.Errorf("grid search: %d names for %d ranges", len(params), len(ranges))
	}
	for i, r := range ranges {
		if len(r) == 0 {
			return nil, fmt.Errorf("grid search: empty range for %s", params[i])
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// Trial is one evaluated combination.
type Trial struct {
	Params map[string]float64
	Score  float64
}

// Search returns the best trial and all trials sorted by descending
// score. Combinations whose objective fails are skipped; a canceled
// context stops the search.
func (g *GridSearch) Search(ctx context.Context, objective Objective) (Trial, []Trial, error) {
	var trials []Trial
	if err := g.searchRecursive(ctx, 0, map[string]float64{}, objective, &trials); err != nil {
		return Trial{}, trials, err
	}
	if len(trials) == 0 {
		return Trial{}, nil, errors.New("grid search: every combination failed")
	}

	sort.SliceStable(trials, func(i, j int) bool {
		return trials[i].Score > trials[j].Score
	})
	return trials[0], trials, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	objective Objective,
	trials *[]Trial,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		score, err := objective(ctx, current)
		if err != nil || math.IsNaN(score) {
			return nil
		}
		params := make(map[string]float64, len(current))
		for k, v := range current {
			params[k] = v
		}
		*trials = append(*trials, Trial{Params: params, Score: score})
		return nil
	}

	name := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		current[name] = val
		if err := g.searchRecursive(ctx, depth+1, current, objective, trials); err != nil {
			return err
		}
	}
	delete(current, name)
	return nil
}

// Linspace returns n evenly spaced values over [lo, hi].
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}
