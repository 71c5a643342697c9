// Package fishsim exposes the harvested-population environment to
// training harnesses outside this module.
//
//	f, err := fishsim.New(fishsim.DefaultParams())
//	obs := f.Reset(0, nil)
//	obs, reward, done, info := f.Step(fishsim.Control{0.1})
package fishsim

import (
	"github.com/san-kum/fishsim/internal/dynamo"
	"github.com/san-kum/fishsim/internal/env"
)

type (
	Params      = env.Params
	Penalty     = env.Penalty
	Fishery     = env.Fishery
	Environment = env.Environment
	Box         = env.Box
	Info        = env.Info
	Options     = env.Options
	Option      = env.Option
	State       = dynamo.State
	Control     = dynamo.Control
)

var (
	ErrUnknownValue    = dynamo.ErrUnknownValue
	ErrParameterBounds = dynamo.ErrParameterBounds
)

func DefaultParams() Params { return env.DefaultParams() }

// New validates p and returns a fishery that has already been reset.
func New(p Params, opts ...Option) (*Fishery, error) { return env.New(p, opts...) }

var WithLogger = env.WithLogger
