package app

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

const (
	// DefaultTaskfile is used when no --file is given.
	DefaultTaskfile = "Taskfile.hcl"
	// DefaultTask is run when no task names are given.
	DefaultTask = "default"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Paths    []string // taskfiles, directories or globs
	Tasks    []string // names or patterns to run
	EnvFiles []string

	List            bool
	NoColor         bool
	LogFormat       string
	LogLevel        string
	HealthcheckPort int
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.Paths) == 0 {
		cfg.Paths = []string{DefaultTaskfile}
	}
	if len(cfg.Tasks) == 0 {
		cfg.Tasks = []string{DefaultTask}
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if !slices.Contains(logLevels, cfg.LogLevel) {
		return nil, fmt.Errorf("invalid log-level %q: must be one of %s", cfg.LogLevel, strings.Join(logLevels, ", "))
	}
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if !slices.Contains(logFormats, cfg.LogFormat) {
		return nil, fmt.Errorf("invalid log-format %q: must be one of %s", cfg.LogFormat, strings.Join(logFormats, ", "))
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("invalid healthcheck-port %d", cfg.HealthcheckPort)
	}
	for _, name := range cfg.Tasks {
		if strings.TrimSpace(name) == "" {
			return nil, errors.New("task names must not be empty")
		}
	}

	return &cfg, nil
}
