package app

import (
	"log/slog"
	"os"

	"opkit/internal/config"
	"opkit/internal/domain"
	"opkit/internal/logging"
	"opkit/internal/process"
	"opkit/internal/services/build"
)

// Wire bundles the environment, logger and services for the CLI.
type Wire struct {
	Platform domain.Platform
	Env      config.Env
	Log      *slog.Logger
	Runner   domain.Runner
	Pipeline *build.Pipeline
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}
	log := logging.New(out, logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})

	platform := cfg.Platform
	if platform == "" {
		platform = domain.CurrentPlatform()
	}

	env, err := config.Load(platform)
	if err != nil {
		return nil, err
	}

	runner := process.New()
	// A nil notarizer gets the altool poller on the same runner.
	pipeline := build.New(platform, runner, env, nil, log)

	return &Wire{
		Platform: platform,
		Env:      env,
		Log:      log,
		Runner:   runner,
		Pipeline: pipeline,
	}, nil
}
