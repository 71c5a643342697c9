package models

import (
	"fmt"
	"sort"

	"github.com/san-kum/fishsim/internal/dynamo"
)

// ConfigurableSystem is a growth law whose parameters can be changed
// between evaluations.
type ConfigurableSystem interface {
	dynamo.System
	dynamo.Configurable
}

// Drift makes a system non-stationary: before every evaluation each
// drifting parameter is set to base + slope*t.
type Drift struct {
	sys    ConfigurableSystem
	base   map[string]float64
	slopes map[string]float64
	names  []string
}

func NewDrift(sys ConfigurableSystem, slopes map[string]float64) (*Drift, error) {
	base := sys.GetParams()
	names := make([]string, 0, len(slopes))
	for name := range slopes {
		if _, ok := base[name]; !ok {
			return nil, fmt.Errorf("drift on %q: %w", name, dynamo.ErrUnknownParam)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	s := make(map[string]float64, len(slopes))
	for k, v := range slopes {
		s[k] = v
	}

	return &Drift{sys: sys, base: base, slopes: s, names: names}, nil
}

func (d *Drift) StateDim() int { return d.sys.StateDim() }

func (d *Drift) Derive(x dynamo.State, t float64) dynamo.State {
	for _, name := range d.names {
		// ParamAt is finite and keeps K positive, so SetParam cannot fail.
		_ = d.sys.SetParam(name, d.ParamAt(name, t))
	}
	return d.sys.Derive(x, t)
}

// ParamAt returns the value a parameter takes at time t. A carrying
// capacity drifting to zero or below is held at MinCapacity.
func (d *Drift) ParamAt(name string, t float64) float64 {
	v := d.base[name] + d.slopes[name]*t
	if name == "K" && v < MinCapacity {
		v = MinCapacity
	}
	return v
}

func (d *Drift) GetParams() map[string]float64 {
	out := make(map[string]float64, len(d.base))
	for k, v := range d.base {
		out[k] = v
	}
	return out
}

// SetParam changes the value a parameter starts from at t = 0.
func (d *Drift) SetParam(name string, value float64) error {
	if _, ok := d.base[name]; !ok {
		return fmt.Errorf("drift: %q: %w", name, dynamo.ErrUnknownParam)
	}
	if err := d.sys.SetParam(name, value); err != nil {
		return err
	}
	d.base[name] = value
	return nil
}
