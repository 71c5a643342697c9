package optim

import (
	"context"

	"github.com/san-kum/fishsim/internal/analysis"
	"github.com/san-kum/fishsim/internal/dynamo"
	"github.com/san-kum/fishsim/internal/env"
	"github.com/san-kum/fishsim/internal/policy"
	"github.com/san-kum/fishsim/internal/rollout"
)

// ParamValue names the policy value in a grid search.
const ParamValue = "value"

// TunePolicy searches the primary value of the named policy, scoring each
// candidate by its mean return over episodes seeded from seed.
func TunePolicy(ctx context.Context, p env.Params, name string, values []float64, episodes int, seed uint64) (Trial, []Trial, error) {
	if err := (policy.Config{Name: name}).Validate(); err != nil {
		return Trial{}, nil, err
	}
	if err := p.Validate(); err != nil {
		return Trial{}, nil, err
	}

	g, err := NewGridSearch([]string{ParamValue}, [][]float64{values})
	if err != nil {
		return Trial{}, nil, err
	}

	return g.Search(ctx, func(ctx context.Context, params map[string]float64) (float64, error) {
		cfg := policy.Config{Name: name, Value: params[ParamValue]}
		ens := &rollout.Ensemble{
			NewEnv:    env.Factory(p),
			NewPolicy: func() (dynamo.Policy, error) { return cfg.Build(1) },
		}
		results, err := ens.Run(ctx, episodes, seed)
		if err != nil {
			return 0, err
		}
		return analysis.Summarize(rollout.Returns(results)).Mean, nil
	})
}
