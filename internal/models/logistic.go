package models

import (
	"fmt"
	"math"

	"github.com/san-kum/fishsim/internal/dynamo"
)

const (
	DefaultGrowthRate       = 1.0
	DefaultCarryingCapacity = 1.0

	// MinCapacity is the floor a drifting carrying capacity is held at.
	MinCapacity = 1e-6
)

// Logistic is single-species logistic growth, dN/dt = rN(1 - N/K).
type Logistic struct {
	R float64
	K float64
}

func NewLogistic(r, k float64) *Logistic {
	return &Logistic{R: r, K: k}
}

func (l *Logistic) StateDim() int {
	return 1
}

func (l *Logistic) Derive(x dynamo.State, t float64) dynamo.State {
	n := x[0]
	return dynamo.State{l.R * n * (1 - n/l.K)}
}

// Equilibria returns the fixed points of the unharvested law.
func (l *Logistic) Equilibria() []float64 {
	return []float64{0, l.K}
}

func (l *Logistic) GetParams() map[string]float64 {
	return map[string]float64{
		"r": l.R,
		"K": l.K,
	}
}

func (l *Logistic) SetParam(name string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("param %s=%v: %w", name, value, dynamo.ErrParameterBounds)
	}
	switch name {
	case "r":
		l.R = value
	case "K":
		if value <= 0 {
			return fmt.Errorf("carrying capacity must be positive, got %v: %w", value, dynamo.ErrParameterBounds)
		}
		l.K = value
	default:
		return fmt.Errorf("logistic: %q: %w", name, dynamo.ErrUnknownParam)
	}
	return nil
}
