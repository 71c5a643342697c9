// Package rollout evaluates fixed policies on environments.
//
// A [Runner] plays one episode and records the trajectory, return and
// metrics. An [Ensemble] plays many independent episodes concurrently,
// one environment per goroutine, for seed sweeps.
package rollout
