// Package experiment ties a configuration to a batch of rollouts: it
// builds environments and policies from a [config.Config], runs them as
// an ensemble, summarizes the returns and stores each run.
package experiment
