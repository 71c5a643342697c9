// Package policy provides fixed harvest rules for evaluating a fishery.
//
// Policies implement [dynamo.Policy] and return the harvest to take given
// the observed population:
//
//   - [None]: never harvest
//   - [Constant]: harvest a fixed mass every step
//   - [Escapement]: harvest everything above a target level
//   - [Proportional]: harvest a fixed fraction of the population
//   - [Feedback]: PI control of the population toward a target
//
// Escapement, Proportional and Feedback compute a harvest mass from the
// observed population and only make sense with the fishery's mass action
// mode; the config layer rejects them under effort mode.
//
// None of them learn. Stateful policies implement [Resetter] and are
// reset by the rollout runner at the start of each episode.
package policy
