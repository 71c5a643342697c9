package env

import "github.com/san-kum/fishsim/internal/dynamo"

// Phase is the episode state of an environment.
type Phase int

const (
	Active Phase = iota
	Terminated
)

func (p Phase) String() string {
	switch p {
	case Active:
		return "Active"
	case Terminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}

// Info carries auxiliary step data. The fishery always returns it empty.
type Info map[string]any

// Options is accepted by Reset for harness compatibility.
type Options map[string]any

// Environment is the reset/step contract consumed by external harnesses.
type Environment interface {
	Reset(seed uint64, options Options) dynamo.State
	Step(action dynamo.Control) (obs dynamo.State, reward float64, terminated bool, info Info)
	ObservationSpace() Box
	ActionSpace() Box
}

// Episodic exposes the bookkeeping of an environment that rollout tooling
// reads without mutating.
type Episodic interface {
	Environment
	TimeStep() int
	Phase() Phase
	Collapsed() bool
	Population() dynamo.State
	LastHarvest() dynamo.Control
}
