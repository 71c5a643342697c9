package integrators

import "github.com/san-kum/fishsim/internal/dynamo"

// Euler is the forward Euler step. With dt = 1 it turns a growth law
// f(N) into the difference equation N' = N + f(N).
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys dynamo.System, x dynamo.State, t float64, dt float64) dynamo.State {
	dx := sys.Derive(x, t)
	result := make(dynamo.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}
