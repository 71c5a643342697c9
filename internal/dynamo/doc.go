// Package dynamo provides core primitives for harvested population models.
//
// The package defines the fundamental interfaces and types shared by the
// environment, the growth models and the rollout tooling:
//
//   - [State]: vector of species abundances
//   - [Control]: harvesting action, one entry per harvested species
//   - [System]: growth law (dX/dt = f(X, t))
//   - [Integrator]: advances a [System] by one step
//   - [Policy]: fixed harvest rule mapping observations to actions
//   - [Metric] and [Observer]: per-step rollout hooks
//
// # Example
//
//	sys := models.NewLogistic(1.0, 1.0)
//	integ := integrators.NewEuler()
//	next := integ.Step(sys, dynamo.State{0.5}, 0, 1)
//
// # Thread Safety
//
// None of the implementations in this module are safe for concurrent
// use. Parallel rollouts give each goroutine its own environment (see
// rollout.Ensemble) and use [ParallelFor] only over independent work.
package dynamo
