package main

import (
	"log/slog"
	"strings"

	"submux/internal/config"
	"submux/internal/logging"
)

// commandContext carries persistent flag state into subcommands. submux
// works on one project directory per invocation, so configuration is loaded
// from each command's project argument rather than a global path.
type commandContext struct {
	logLevel *string
}

func newCommandContext(logLevel *string) *commandContext {
	return &commandContext{logLevel: logLevel}
}

// loadProject resolves a project directory argument into a validated
// configuration.
func (c *commandContext) loadProject(dir string) (*config.Project, error) {
	cfg, _, err := config.Load(dir)
	return cfg, err
}

// loggerFor builds the project logger. The --log-level flag wins over the
// config's [logging] section.
func (c *commandContext) loggerFor(cfg *config.Project) (*slog.Logger, error) {
	opts := logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	}
	if c.logLevel != nil && strings.TrimSpace(*c.logLevel) != "" {
		opts.Level = strings.TrimSpace(*c.logLevel)
	}
	return logging.New(opts)
}
