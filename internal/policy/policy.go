package policy

import (
	"math"

	"github.com/san-kum/fishsim/internal/dynamo"
)

// Resetter is implemented by policies that carry state across steps.
type Resetter interface {
	Reset()
}

type None struct {
	dim int
}

func NewNone(dim int) *None {
	return &None{dim: dim}
}

func (n *None) Act(x dynamo.State, t int) dynamo.Control {
	return make(dynamo.Control, n.dim)
}

type Constant struct {
	Harvest float64
}

func NewConstant(harvest float64) *Constant {
	return &Constant{Harvest: harvest}
}

func (c *Constant) Act(x dynamo.State, t int) dynamo.Control {
	u := make(dynamo.Control, len(x))
	for i := range u {
		u[i] = c.Harvest
	}
	return u
}

// Escapement leaves Target in the water and harvests the rest.
type Escapement struct {
	Target float64
}

func NewEscapement(target float64) *Escapement {
	return &Escapement{Target: target}
}

func (e *Escapement) Act(x dynamo.State, t int) dynamo.Control {
	u := make(dynamo.Control, len(x))
	for i, n := range x {
		u[i] = math.Max(0, n-e.Target)
	}
	return u
}

type Proportional struct {
	Rate float64
}

func NewProportional(rate float64) *Proportional {
	return &Proportional{Rate: rate}
}

func (p *Proportional) Act(x dynamo.State, t int) dynamo.Control {
	u := make(dynamo.Control, len(x))
	for i, n := range x {
		u[i] = p.Rate * n
	}
	return u
}
