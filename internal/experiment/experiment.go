package experiment

import (
	"context"
	"fmt"
	"os"

	"github.com/go-logr/logr"

	"github.com/san-kum/fishsim/internal/analysis"
	"github.com/san-kum/fishsim/internal/config"
	"github.com/san-kum/fishsim/internal/dynamo"
	"github.com/san-kum/fishsim/internal/env"
	"github.com/san-kum/fishsim/internal/logging"
	"github.com/san-kum/fishsim/internal/metrics"
	"github.com/san-kum/fishsim/internal/rollout"
	"github.com/san-kum/fishsim/internal/storage"
)

// Experiment evaluates the configured policy over a batch of episodes and
// optionally stores every run.
type Experiment struct {
	cfg   *config.Config
	log   logr.Logger
	store *storage.Store
}

type Option func(*Experiment)

func WithLogger(l logr.Logger) Option {
	return func(e *Experiment) { e.log = l }
}

// WithoutStorage skips persisting runs even when DataDir is set.
func WithoutStorage() Option {
	return func(e *Experiment) { e.store = nil }
}

// Report is the outcome of a batch.
type Report struct {
	Results []*rollout.Result
	Summary analysis.Summary
	RunIDs  []string
}

// New validates cfg. The default logger writes to stderr at the
// configured verbosity.
func New(cfg *config.Config, opts ...Option) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("experiment: %w", err)
	}

	e := &Experiment{
		cfg: cfg,
		log: logging.New(os.Stderr, cfg.Verbosity),
	}
	if cfg.DataDir != "" {
		e.store = storage.New(cfg.DataDir)
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.WithName("experiment")
	return e, nil
}

// FromFile loads a config, applies environment overrides from the process
// and the optional envFile, and builds the experiment.
func FromFile(path, envFile string, opts ...Option) (*Experiment, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(cfg, envFile); err != nil {
		return nil, err
	}
	return New(cfg, opts...)
}

// FromPreset builds the experiment for a named preset.
func FromPreset(name string, opts ...Option) (*Experiment, error) {
	cfg := config.GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("preset %q (accepted: %v): %w", name, config.ListPresets(), dynamo.ErrUnknownValue)
	}
	return New(cfg, opts...)
}

func (e *Experiment) Config() *config.Config { return e.cfg }

func (e *Experiment) Run(ctx context.Context) (*Report, error) {
	cfg := e.cfg
	threshold := cfg.Episode.ExtinctionThreshold

	ens := &rollout.Ensemble{
		NewEnv:     env.Factory(cfg.Episode, env.WithLogger(e.log)),
		NewPolicy:  func() (dynamo.Policy, error) { return cfg.Policy.Build(1) },
		NewMetrics: func() []dynamo.Metric { return metrics.Default(threshold) },
		Log:        e.log,
	}

	e.log.V(1).Info("starting", "policy", cfg.Policy.String(), "episodes", cfg.Episodes, "seed", cfg.Seed)
	results, err := ens.Run(ctx, cfg.Episodes, cfg.Seed)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Results: results,
		Summary: analysis.Summarize(rollout.Returns(results)),
	}

	if e.store != nil {
		if err := e.store.Init(); err != nil {
			return report, fmt.Errorf("storage: %w", err)
		}
		for _, res := range results {
			id, err := e.store.Save(cfg.Episode, cfg.Policy, res)
			if err != nil {
				return report, fmt.Errorf("storage: %w", err)
			}
			report.RunIDs = append(report.RunIDs, id)
		}
	}

	collapsed := 0
	for _, res := range results {
		if res.Collapsed {
			collapsed++
		}
	}
	e.log.Info("finished", "policy", cfg.Policy.String(), "mean_return", report.Summary.Mean, "collapsed", collapsed, "stored", len(report.RunIDs))
	return report, nil
}
