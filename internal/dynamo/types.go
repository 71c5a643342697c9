package dynamo

import (
	"fmt"
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Min returns the smallest component, or +Inf for an empty state.
func (s State) Min() float64 {
	m := math.Inf(1)
	for _, v := range s {
		if v < m {
			m = v
		}
	}
	return m
}

func (s State) Sum() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v
	}
	return sum
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

// Control is the harvesting action applied to a state, one entry per
// harvested species.
type Control []float64

func (c Control) Clone() Control {
	out := make(Control, len(c))
	copy(out, c)
	return out
}

// System is a continuous-time growth law dX/dt = f(X, t). Harvesting is
// applied by the environment after each growth step, not inside Derive.
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

type Integrator interface {
	Step(sys System, x State, t float64, dt float64) State
}

// Policy maps an observation at a given step to an action.
type Policy interface {
	Act(x State, t int) Control
}

type Metric interface {
	Name() string
	Observe(x State, u Control, reward float64, t int)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, u Control, reward float64, t int)
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

type StepError struct {
	Step    int
	Message string
}

func (e StepError) Error() string {
	return fmt.Sprintf("step %d: %s", e.Step, e.Message)
}
