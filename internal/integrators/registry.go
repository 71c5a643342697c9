package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/fishsim/internal/dynamo"
)

const (
	NameEuler = "euler"
	NameRK4   = "rk4"
)

var registry = map[string]func() dynamo.Integrator{
	NameEuler: func() dynamo.Integrator { return NewEuler() },
	NameRK4:   func() dynamo.Integrator { return NewRK4() },
}

// ByName returns a fresh integrator. RK4 keeps scratch buffers, so each
// environment must get its own instance.
func ByName(name string) (dynamo.Integrator, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("integrator %q (accepted: %v): %w", name, Names(), dynamo.ErrUnknownValue)
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
