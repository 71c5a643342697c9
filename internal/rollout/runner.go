package rollout

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/san-kum/fishsim/internal/dynamo"
	"github.com/san-kum/fishsim/internal/env"
	"github.com/san-kum/fishsim/internal/policy"
)

// DefaultMaxSteps bounds episodes of environments that never terminate.
const DefaultMaxSteps = 1_000_000

// Result is the trajectory and outcome of one episode. Observations has
// one more entry than Actions and Rewards: the reset observation.
// Actions are what the policy asked for; Harvests are the masses the
// environment removed.
type Result struct {
	Seed         uint64
	Observations []dynamo.State
	Actions      []dynamo.Control
	Harvests     []dynamo.Control
	Rewards      []float64
	Return       float64
	Steps        int
	Collapsed    bool
	Metrics      map[string]float64
}

// Runner plays episodes of an environment under a fixed policy.
type Runner struct {
	metrics   []dynamo.Metric
	observers []dynamo.Observer
	maxSteps  int
	log       logr.Logger
}

type Option func(*Runner)

func WithLogger(l logr.Logger) Option {
	return func(r *Runner) { r.log = l }
}

func WithMaxSteps(n int) Option {
	return func(r *Runner) { r.maxSteps = n }
}

func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		metrics:   make([]dynamo.Metric, 0),
		observers: make([]dynamo.Observer, 0),
		maxSteps:  DefaultMaxSteps,
		log:       logr.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.WithName("rollout")
	return r
}

func (r *Runner) AddMetric(m dynamo.Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o dynamo.Observer) { r.observers = append(r.observers, o) }

// Run resets e with seed and steps it under p until it terminates. The
// context is checked between steps; on cancellation the partial result
// is returned with a *dynamo.RolloutError wrapping ErrContextCanceled.
func (r *Runner) Run(ctx context.Context, e env.Environment, p dynamo.Policy, seed uint64) (*Result, error) {
	for _, m := range r.metrics {
		m.Reset()
	}
	if rp, ok := p.(policy.Resetter); ok {
		rp.Reset()
	}

	obs := e.Reset(seed, nil)
	result := &Result{
		Seed:         seed,
		Observations: []dynamo.State{obs.Clone()},
		Metrics:      make(map[string]float64),
	}

	for step := 0; ; step++ {
		select {
		case <-ctx.Done():
			r.finish(result)
			return result, &dynamo.RolloutError{
				Step:    step,
				State:   obs.Clone(),
				Wrapped: fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, ctx.Err()),
			}
		default:
		}

		if step >= r.maxSteps {
			r.finish(result)
			return result, &dynamo.RolloutError{
				Step:    step,
				State:   obs.Clone(),
				Wrapped: dynamo.StepError{Step: step, Message: fmt.Sprintf("episode exceeded %d steps", r.maxSteps)},
			}
		}

		u := p.Act(obs, step)
		if len(u) != e.ActionSpace().Dim() {
			r.finish(result)
			return result, &dynamo.RolloutError{
				Step:    step,
				State:   obs.Clone(),
				Wrapped: fmt.Errorf("action has %d components, space has %d: %w", len(u), e.ActionSpace().Dim(), dynamo.ErrDimensionMismatch),
			}
		}

		next, reward, terminated, _ := e.Step(u)
		pop, harvest := harvestOf(e, next, u)

		for _, m := range r.metrics {
			m.Observe(pop, harvest, reward, step+1)
		}
		for _, o := range r.observers {
			o.OnStep(pop, harvest, reward, step+1)
		}

		result.Actions = append(result.Actions, u.Clone())
		result.Harvests = append(result.Harvests, harvest)
		result.Rewards = append(result.Rewards, reward)
		result.Observations = append(result.Observations, next.Clone())
		result.Return += reward
		result.Steps++
		obs = next

		if terminated {
			break
		}
	}

	if ep, ok := e.(env.Episodic); ok {
		result.Collapsed = ep.Collapsed()
	}
	r.finish(result)

	r.log.V(1).Info("episode finished", "seed", seed, "steps", result.Steps, "return", result.Return, "collapsed", result.Collapsed)
	return result, nil
}

// harvestOf returns the population and harvested mass after a step. Plain
// environments only expose the observation and the requested action.
func harvestOf(e env.Environment, obs dynamo.State, u dynamo.Control) (dynamo.State, dynamo.Control) {
	if ep, ok := e.(env.Episodic); ok {
		return ep.Population(), ep.LastHarvest()
	}
	return obs, u.Clone()
}

func (r *Runner) finish(result *Result) {
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

// Populations returns the first component of every recorded observation,
// the population scaled by the fishery's var_bound.
func (res *Result) Populations() []float64 {
	out := make([]float64, len(res.Observations))
	for i, o := range res.Observations {
		if len(o) > 0 {
			out[i] = o[0]
		}
	}
	return out
}

// HarvestSeries returns the first species' harvested mass aligned with
// Populations: entry 0 is the reset and is always zero. Results without
// recorded harvests fall back to the requested actions.
func (res *Result) HarvestSeries() []float64 {
	src := res.Harvests
	if len(src) == 0 {
		src = res.Actions
	}
	out := make([]float64, len(res.Observations))
	for i, h := range src {
		if i+1 < len(out) && len(h) > 0 {
			out[i+1] = h[0]
		}
	}
	return out
}
