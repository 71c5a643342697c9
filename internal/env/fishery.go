package env

import (
	"fmt"

	"github.com/go-logr/logr"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/san-kum/fishsim/internal/dynamo"
	"github.com/san-kum/fishsim/internal/integrators"
	"github.com/san-kum/fishsim/internal/models"
)

// Fishery is a single harvested population following logistic growth.
// Each step grows the population by one unit of time, removes the
// harvest, and ends the episode on collapse or when TMax is reached.
type Fishery struct {
	params   Params
	sys      dynamo.System
	integ    dynamo.Integrator
	obsSpace Box
	actSpace Box
	popSpace Box
	log      logr.Logger

	pop       dynamo.State
	harvested dynamo.Control
	step      int
	phase     Phase
	collapsed bool
}

type Option func(*Fishery)

// WithLogger sets the logger; the default discards everything.
func WithLogger(l logr.Logger) Option {
	return func(f *Fishery) { f.log = l }
}

// New validates p and returns a fishery that has already been reset.
func New(p Params, opts ...Option) (*Fishery, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("fishery params: %w", err)
	}

	integ, err := integrators.ByName(p.Integrator)
	if err != nil {
		return nil, err
	}

	logistic := models.NewLogistic(p.GrowthRate, p.CarryingCapacity)
	var sys dynamo.System = logistic
	if len(p.Drift) > 0 {
		drift, err := models.NewDrift(logistic, p.Drift)
		if err != nil {
			return nil, fmt.Errorf("fishery drift: %w", err)
		}
		sys = drift
	}

	drift := make(map[string]float64, len(p.Drift))
	for k, v := range p.Drift {
		drift[k] = v
	}
	p.Drift = drift

	f := &Fishery{
		params:   p,
		sys:      sys,
		integ:    integ,
		obsSpace: NewBox(sys.StateDim(), 0, 1),
		actSpace: NewBox(sys.StateDim(), 0, 1),
		popSpace: NewBox(sys.StateDim(), 0, p.VarBound),
		log:      logr.Discard(),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.log = f.log.WithName("fishery")

	f.Reset(0, nil)
	return f, nil
}

// Reset starts a new episode from the initial population. The seed only
// matters when ResetSigma > 0, in which case the start is perturbed by
// Gaussian noise drawn from a source seeded with it. Options are ignored.
func (f *Fishery) Reset(seed uint64, options Options) dynamo.State {
	n := f.params.InitState
	if f.params.ResetSigma > 0 {
		noise := distuv.Normal{Mu: 0, Sigma: f.params.ResetSigma, Src: rand.NewSource(seed)}
		n += noise.Rand()
	}

	pop := make(dynamo.State, f.obsSpace.Dim())
	for i := range pop {
		pop[i] = n
	}
	f.popSpace.Clip(pop)

	f.pop = pop
	f.harvested = make(dynamo.Control, len(pop))
	f.step = 0
	f.phase = Active
	f.collapsed = false

	f.log.V(2).Info("reset", "seed", seed, "population", pop[0])
	return f.observe()
}

// observe maps the population into the observation space.
func (f *Fishery) observe() dynamo.State {
	obs := f.pop.Clone()
	for i := range obs {
		obs[i] /= f.params.VarBound
	}
	f.obsSpace.Clip(obs)
	return obs
}

// Step advances the episode by one time step. Out-of-range actions are
// clipped to the action space. Stepping a terminated episode leaves the
// state untouched and reports it as terminated with zero reward.
func (f *Fishery) Step(action dynamo.Control) (dynamo.State, float64, bool, Info) {
	if f.phase == Terminated {
		f.log.V(1).Error(dynamo.ErrTerminated, "step ignored", "step", f.step)
		for i := range f.harvested {
			f.harvested[i] = 0
		}
		return f.observe(), 0, true, Info{}
	}

	a := make(dynamo.Control, f.actSpace.Dim())
	copy(a, action)
	f.actSpace.Clip(a)

	harvest := f.harvest(a)

	next := f.integ.Step(f.sys, f.pop, float64(f.step), 1).Sub(dynamo.State(harvest))
	if !next.IsValid() {
		f.log.Error(dynamo.ErrInvalidState, "growth produced invalid population", "step", f.step, "population", f.pop[0])
		for i := range next {
			next[i] = 0
		}
	}
	f.clipPopulation(next)

	f.step++
	reward := dynamo.State(harvest).Sum()
	terminated := false

	if f.pop.Min() < f.params.ExtinctionThreshold || next.Min() < f.params.ExtinctionThreshold {
		reward += f.params.Penalty.At(f.step)
		terminated = true
		f.collapsed = true
	} else if f.step >= f.params.TMax {
		terminated = true
	}

	f.pop = next
	f.harvested = harvest
	if terminated {
		f.phase = Terminated
		f.log.V(1).Info("episode terminated", "step", f.step, "collapsed", f.collapsed, "population", next[0])
	}

	return f.observe(), reward, terminated, Info{}
}

func (f *Fishery) harvest(a dynamo.Control) dynamo.Control {
	if f.params.ActionMode == ActionEffort {
		h := make(dynamo.Control, len(a))
		for i := range a {
			h[i] = a[i] * f.pop[i]
		}
		return h
	}
	return a
}

// clipPopulation keeps the population in [0, VarBound]. Overshooting the
// bound happens for growth rates above 2; raise VarBound to avoid it.
func (f *Fishery) clipPopulation(next dynamo.State) {
	high := f.popSpace.High()
	for i := range next {
		if next[i] > high[i] {
			f.log.V(1).Info("population clipped to var_bound", "step", f.step, "population", next[i], "bound", high[i])
		}
	}
	f.popSpace.Clip(next)
}

func (f *Fishery) ObservationSpace() Box { return f.obsSpace }
func (f *Fishery) ActionSpace() Box      { return f.actSpace }

func (f *Fishery) TimeStep() int   { return f.step }
func (f *Fishery) Phase() Phase    { return f.phase }
func (f *Fishery) Collapsed() bool { return f.collapsed }

// Population returns a copy of the current population in population units.
func (f *Fishery) Population() dynamo.State { return f.pop.Clone() }

// LastHarvest returns the mass removed by the most recent step, the
// quantity the reward credits. It is zero after Reset and after a step
// on a terminated episode.
func (f *Fishery) LastHarvest() dynamo.Control { return f.harvested.Clone() }

// Params returns the configuration the fishery was built with.
func (f *Fishery) Params() Params { return f.params }

// System exposes the growth law, e.g. for live parameter tuning.
func (f *Fishery) System() dynamo.System { return f.sys }

// Factory returns a constructor for independent fisheries sharing p, for
// parallel rollouts.
func Factory(p Params, opts ...Option) func() (Environment, error) {
	return func() (Environment, error) {
		f, err := New(p, opts...)
		if err != nil {
			return nil, err
		}
		return f, nil
	}
}
