package env

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/fishsim/internal/dynamo"
	"github.com/san-kum/fishsim/internal/integrators"
)

const (
	DefaultInitState           = 0.5
	DefaultTMax                = 200
	DefaultExtinctionThreshold = 0.05
	DefaultGrowthRate          = 1.0
	DefaultCarryingCapacity    = 1.0
	DefaultPenaltyScale        = 200.0
	DefaultVarBound            = 1.0
)

// ActionMode selects how an action becomes a harvested mass.
type ActionMode string

const (
	// ActionMass harvests the action value itself.
	ActionMass ActionMode = "mass"
	// ActionEffort harvests the action fraction of the current population.
	ActionEffort ActionMode = "effort"
)

var actionModes = []ActionMode{ActionMass, ActionEffort}

// PenaltyKind selects the shape of the collapse penalty.
type PenaltyKind string

const (
	PenaltyInverseTime PenaltyKind = "inverse_time"
	PenaltyConstant    PenaltyKind = "constant"
	PenaltyNone        PenaltyKind = "none"
)

var penaltyKinds = []PenaltyKind{PenaltyInverseTime, PenaltyConstant, PenaltyNone}

// Penalty is added to the reward of the step on which the population
// collapses.
type Penalty struct {
	Kind  PenaltyKind `yaml:"kind" json:"kind"`
	Scale float64     `yaml:"scale" json:"scale"`
}

// At returns the penalty for a collapse on step t (t >= 1). The inverse
// time shape punishes early collapses far more than late ones.
func (p Penalty) At(t int) float64 {
	switch p.Kind {
	case PenaltyInverseTime:
		if t < 1 {
			t = 1
		}
		return -p.Scale / float64(t)
	case PenaltyConstant:
		return -p.Scale
	default:
		return 0
	}
}

// Params is the immutable configuration of a fishery episode. Population
// quantities (InitState, ExtinctionThreshold, CarryingCapacity) are in
// population units; observations are the population divided by VarBound.
type Params struct {
	InitState           float64            `yaml:"init_state" json:"init_state"`
	TMax                int                `yaml:"t_max" json:"t_max"`
	ExtinctionThreshold float64            `yaml:"extinction_threshold" json:"extinction_threshold"`
	GrowthRate          float64            `yaml:"growth_rate" json:"growth_rate"`
	CarryingCapacity    float64            `yaml:"carrying_capacity" json:"carrying_capacity"`
	Integrator          string             `yaml:"integrator" json:"integrator"`
	ActionMode          ActionMode         `yaml:"action_mode" json:"action_mode"`
	Penalty             Penalty            `yaml:"penalty" json:"penalty"`
	ResetSigma          float64            `yaml:"reset_sigma" json:"reset_sigma"`
	VarBound            float64            `yaml:"var_bound" json:"var_bound"`
	Drift               map[string]float64 `yaml:"drift,omitempty" json:"drift,omitempty"`
}

func DefaultParams() Params {
	return Params{
		InitState:           DefaultInitState,
		TMax:                DefaultTMax,
		ExtinctionThreshold: DefaultExtinctionThreshold,
		GrowthRate:          DefaultGrowthRate,
		CarryingCapacity:    DefaultCarryingCapacity,
		Integrator:          integrators.NameEuler,
		ActionMode:          ActionMass,
		Penalty:             Penalty{Kind: PenaltyInverseTime, Scale: DefaultPenaltyScale},
		VarBound:            DefaultVarBound,
	}
}

// Validate checks enumerated fields against their accepted sets and
// numeric fields against their ranges. All violations are reported.
func (p Params) Validate() error {
	var errs []error

	if _, err := integrators.ByName(p.Integrator); err != nil {
		errs = append(errs, err)
	}
	if !contains(actionModes, p.ActionMode) {
		errs = append(errs, fmt.Errorf("action_mode %q (accepted: %v): %w", p.ActionMode, actionModes, dynamo.ErrUnknownValue))
	}
	if !contains(penaltyKinds, p.Penalty.Kind) {
		errs = append(errs, fmt.Errorf("penalty kind %q (accepted: %v): %w", p.Penalty.Kind, penaltyKinds, dynamo.ErrUnknownValue))
	}
	for name := range p.Drift {
		if name != "r" && name != "K" {
			errs = append(errs, fmt.Errorf("drift parameter %q (accepted: [K r]): %w", name, dynamo.ErrUnknownValue))
		}
	}

	if p.TMax <= 0 {
		errs = append(errs, bounds("t_max must be positive, got %d", p.TMax))
	}
	if !finite(p.VarBound) || p.VarBound <= 0 {
		errs = append(errs, bounds("var_bound must be positive, got %v", p.VarBound))
	}
	if !within(p.InitState, p.VarBound) {
		errs = append(errs, bounds("init_state must be in [0, var_bound], got %v", p.InitState))
	}
	if !within(p.ExtinctionThreshold, p.VarBound) {
		errs = append(errs, bounds("extinction_threshold must be in [0, var_bound], got %v", p.ExtinctionThreshold))
	}
	if !finite(p.GrowthRate) || p.GrowthRate < 0 {
		errs = append(errs, bounds("growth_rate must be finite and non-negative, got %v", p.GrowthRate))
	}
	if !finite(p.CarryingCapacity) || p.CarryingCapacity <= 0 {
		errs = append(errs, bounds("carrying_capacity must be positive, got %v", p.CarryingCapacity))
	} else if p.CarryingCapacity > p.VarBound {
		errs = append(errs, bounds("carrying_capacity %v exceeds var_bound %v", p.CarryingCapacity, p.VarBound))
	}
	if !finite(p.ResetSigma) || p.ResetSigma < 0 {
		errs = append(errs, bounds("reset_sigma must be non-negative, got %v", p.ResetSigma))
	}
	if !finite(p.Penalty.Scale) {
		errs = append(errs, bounds("penalty scale must be finite, got %v", p.Penalty.Scale))
	}
	for name, slope := range p.Drift {
		if !finite(slope) {
			errs = append(errs, bounds("drift slope for %s must be finite, got %v", name, slope))
		}
	}

	return errors.Join(errs...)
}

func bounds(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, dynamo.ErrParameterBounds)...)
}

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// within reports whether v is in [0, hi]. A non-finite hi accepts nothing.
func within(v, hi float64) bool {
	return finite(v) && finite(hi) && v >= 0 && v <= hi
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
