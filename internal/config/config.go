package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/fishsim/internal/dynamo"
	"github.com/san-kum/fishsim/internal/env"
	"github.com/san-kum/fishsim/internal/policy"
)

const (
	DefaultEpisodes = 1
	DefaultDataDir  = "runs"
	DefaultHarvest  = 0.1

	// EnvPrefix prefixes every environment override, e.g. FISHSIM_T_MAX.
	EnvPrefix = "FISHSIM_"
)

type Config struct {
	Episode   env.Params    `yaml:"episode"`
	Policy    policy.Config `yaml:"policy"`
	Episodes  int           `yaml:"episodes"`
	Seed      uint64        `yaml:"seed"`
	DataDir   string        `yaml:"data_dir"`
	Verbosity int           `yaml:"verbosity"`
}

func DefaultConfig() *Config {
	return &Config{
		Episode:  env.DefaultParams(),
		Policy:   policy.Config{Name: policy.NameConstant, Value: DefaultHarvest},
		Episodes: DefaultEpisodes,
		DataDir:  DefaultDataDir,
	}
}

// Load reads a YAML config on top of the defaults. Unknown keys and
// invalid values are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	var errs []error
	if err := c.Episode.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Policy.Validate(); err != nil {
		errs = append(errs, err)
	} else if c.Episode.ActionMode == env.ActionEffort && c.Policy.HarvestsMass() {
		errs = append(errs, fmt.Errorf("policy %q harvests masses, not efforts (accepted with action_mode %q: constant, none): %w",
			c.Policy.Name, env.ActionEffort, dynamo.ErrUnknownValue))
	}
	if c.Episodes < 1 {
		errs = append(errs, fmt.Errorf("episodes must be at least 1, got %d: %w", c.Episodes, dynamo.ErrParameterBounds))
	}
	if c.Verbosity < 0 {
		errs = append(errs, fmt.Errorf("verbosity must be non-negative, got %d: %w", c.Verbosity, dynamo.ErrParameterBounds))
	}
	return errors.Join(errs...)
}

// ApplyEnv overrides fields from FISHSIM_* environment variables. When
// envFile is non-empty it is loaded first; variables already set in the
// process environment win over the file.
func ApplyEnv(cfg *Config, envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var errs []error
	setFloat := func(key string, dst *float64) {
		if v, ok := lookup(key); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = f
		}
	}
	setInt := func(key string, dst *int) {
		if v, ok := lookup(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = n
		}
	}
	setString := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}

	ep := &cfg.Episode
	setFloat("INIT_STATE", &ep.InitState)
	setInt("T_MAX", &ep.TMax)
	setFloat("EXTINCTION_THRESHOLD", &ep.ExtinctionThreshold)
	setFloat("GROWTH_RATE", &ep.GrowthRate)
	setFloat("CARRYING_CAPACITY", &ep.CarryingCapacity)
	setFloat("RESET_SIGMA", &ep.ResetSigma)
	setFloat("VAR_BOUND", &ep.VarBound)
	setString("INTEGRATOR", &ep.Integrator)
	if v, ok := lookup("ACTION_MODE"); ok {
		ep.ActionMode = env.ActionMode(v)
	}
	if v, ok := lookup("PENALTY"); ok {
		ep.Penalty.Kind = env.PenaltyKind(v)
	}
	setFloat("PENALTY_SCALE", &ep.Penalty.Scale)

	setString("POLICY", &cfg.Policy.Name)
	setFloat("POLICY_VALUE", &cfg.Policy.Value)
	setInt("EPISODES", &cfg.Episodes)
	setString("DATA_DIR", &cfg.DataDir)
	setInt("VERBOSITY", &cfg.Verbosity)
	if v, ok := lookup("SEED"); ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sSEED: %w", EnvPrefix, err))
		} else {
			cfg.Seed = seed
		}
	}

	return errors.Join(errs...)
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + key)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(v), true
}
