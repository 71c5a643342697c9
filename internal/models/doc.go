// Package models provides growth laws for harvested populations.
//
// Each model implements [dynamo.System]; the environment steps it with an
// integrator and applies the harvest afterwards.
//
//   - [Logistic]: dN/dt = rN(1 - N/K)
//   - [Drift]: wraps a configurable model so that parameters change
//     linearly with time (non-stationary episodes)
//
// Both implement [dynamo.Configurable] for runtime parameter adjustment.
package models
