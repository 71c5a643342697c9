package policy

import (
	"fmt"
	"sort"

	"github.com/san-kum/fishsim/internal/dynamo"
)

const (
	NameNone         = "none"
	NameConstant     = "constant"
	NameEscapement   = "escapement"
	NameProportional = "proportional"
	NameFeedback     = "feedback"
)

// Config selects and parameterizes a policy. Value is the harvest for
// constant, the target for escapement, the rate for proportional and Kp
// for feedback; Target and Ki only apply to feedback.
type Config struct {
	Name   string  `yaml:"name" json:"name"`
	Value  float64 `yaml:"value" json:"value"`
	Target float64 `yaml:"target,omitempty" json:"target,omitempty"`
	Ki     float64 `yaml:"ki,omitempty" json:"ki,omitempty"`
}

var builders = map[string]func(c Config, dim int) dynamo.Policy{
	NameNone:         func(c Config, dim int) dynamo.Policy { return NewNone(dim) },
	NameConstant:     func(c Config, dim int) dynamo.Policy { return NewConstant(c.Value) },
	NameEscapement:   func(c Config, dim int) dynamo.Policy { return NewEscapement(c.Value) },
	NameProportional: func(c Config, dim int) dynamo.Policy { return NewProportional(c.Value) },
	NameFeedback:     func(c Config, dim int) dynamo.Policy { return NewFeedback(c.Value, c.Ki, c.Target) },
}

// massPolicies compute their action from the observed population, so the
// action is a harvested mass and is meaningless as an effort fraction.
var massPolicies = map[string]bool{
	NameEscapement:   true,
	NameProportional: true,
	NameFeedback:     true,
}

// HarvestsMass reports whether the policy's actions are masses rather than
// fractions of the stock.
func (c Config) HarvestsMass() bool { return massPolicies[c.Name] }

func (c Config) Validate() error {
	if _, ok := builders[c.Name]; !ok {
		return fmt.Errorf("policy %q (accepted: %v): %w", c.Name, Names(), dynamo.ErrUnknownValue)
	}
	return nil
}

// Build returns a fresh policy for an action space of the given dimension.
func (c Config) Build(dim int) (dynamo.Policy, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return builders[c.Name](c, dim), nil
}

func (c Config) String() string {
	if c.Name == NameNone {
		return c.Name
	}
	return fmt.Sprintf("%s(%g)", c.Name, c.Value)
}

func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByName builds a one-species policy from its name and primary value.
func ByName(name string, value float64) (dynamo.Policy, error) {
	return Config{Name: name, Value: value}.Build(1)
}
