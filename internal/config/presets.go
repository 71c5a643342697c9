package config

import (
	"sort"

	"github.com/san-kum/fishsim/internal/env"
	"github.com/san-kum/fishsim/internal/policy"
)

func preset(mutate func(c *Config)) *Config {
	c := DefaultConfig()
	mutate(c)
	return c
}

// Presets are ready-made scenarios. Use GetPreset to obtain a copy.
var Presets = map[string]*Config{
	"benchmark": preset(func(c *Config) {}),
	"msy": preset(func(c *Config) {
		c.Policy = policy.Config{Name: policy.NameConstant, Value: 0.25}
	}),
	"overfished": preset(func(c *Config) {
		c.Policy = policy.Config{Name: policy.NameConstant, Value: 0.4}
	}),
	"escapement": preset(func(c *Config) {
		c.Policy = policy.Config{Name: policy.NameEscapement, Value: 0.5}
	}),
	"drifting": preset(func(c *Config) {
		c.Episode.Drift = map[string]float64{"r": 0.001}
		c.Policy = policy.Config{Name: policy.NameProportional, Value: 0.4}
	}),
	"noisy": preset(func(c *Config) {
		c.Episode.ResetSigma = 0.1
		c.Episodes = 16
		c.Policy = policy.Config{Name: policy.NameFeedback, Value: 1.0, Ki: 0.05, Target: 0.5}
	}),
	"effort": preset(func(c *Config) {
		c.Episode.ActionMode = env.ActionEffort
		c.Policy = policy.Config{Name: policy.NameConstant, Value: 0.5}
	}),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *p
	if p.Episode.Drift != nil {
		c.Episode.Drift = make(map[string]float64, len(p.Episode.Drift))
		for k, v := range p.Episode.Drift {
			c.Episode.Drift[k] = v
		}
	}
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
