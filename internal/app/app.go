package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/vk/gridtask/internal/config"
	"github.com/vk/gridtask/internal/ctxlog"
	"github.com/vk/gridtask/internal/fsutil"
	"github.com/vk/gridtask/internal/handlers"
	"github.com/vk/gridtask/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	registry *registry.Registry
	files    []string

	httpServer *http.Server
}

// NewApp is the constructor for the main application. Console output goes to
// outW and log records to logW. It loads the env files, discovers and loads
// the taskfiles, and binds every task to its action handler, so that a
// misconfigured taskfile fails here rather than halfway through a run.
// When no modules are given the core modules are used.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader, modules ...handlers.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if len(cfg.EnvFiles) > 0 {
		if err := godotenv.Load(cfg.EnvFiles...); err != nil {
			return nil, fmt.Errorf("failed to load env files: %w", err)
		}
		logger.Debug("Env files loaded.", "files", cfg.EnvFiles)
	}

	files, err := fsutil.FindTaskfiles(cfg.Paths...)
	if err != nil {
		return nil, fmt.Errorf("failed to find taskfiles: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no taskfiles found in %v", cfg.Paths)
	}
	logger.Debug("Taskfiles discovered.", "files", files)

	model, converter, err := loader.Load(ctx, files...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Debug("Configuration loaded and translated into unified model.", "tasks", len(model.Tasks))

	h := handlers.New(handlers.WithLogger(logger))
	if len(modules) == 0 {
		modules = coreModules(outW, logW)
	}
	for _, mod := range modules {
		mod.Register(h)
	}
	logger.Debug("All Go modules registered.", "count", len(modules), "kinds", h.Kinds())

	reg := registry.New(registry.WithLogger(logger))
	if err := bindTasks(ctx, reg, h, model, converter); err != nil {
		return nil, err
	}
	logger.Debug("Registry populated from config model.", "tasks", reg.Len())

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		registry: reg,
		files:    files,
	}, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Files returns the taskfiles the app was loaded from.
func (a *App) Files() []string {
	return a.files
}
