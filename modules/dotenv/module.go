// Package dotenv implements the `dotenv` action, which loads .env files into
// the process environment so that later tasks and commands can see them.
package dotenv

import (
	"context"
	"fmt"
	"sort"

	"github.com/joho/godotenv"
	"github.com/vk/gridtask/internal/ctxlog"
	"github.com/vk/gridtask/internal/handlers"
)

// Kind is the action kind used in `run` blocks.
const Kind = "dotenv"

// DefaultFile is loaded when no files are given.
const DefaultFile = ".env"

// Module implements the handlers.Module interface for this package.
type Module struct{}

// Input defines the arguments for the dotenv action.
type Input struct {
	Files []string `hcl:"files,optional"`
	// Overload replaces variables that are already set.
	Overload bool `hcl:"overload,optional"`
}

// Output is the sorted set of keys defined by the loaded files.
type Output struct {
	Keys []string
}

// OnRunDotenv loads every file in order.
func OnRunDotenv(ctx context.Context, input *Input) (any, error) {
	logger := ctxlog.FromContext(ctx).With("action", Kind)

	files := input.Files
	if len(files) == 0 {
		files = []string{DefaultFile}
	}

	seen := make(map[string]struct{})
	for _, file := range files {
		values, err := godotenv.Read(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read env file %s: %w", file, err)
		}
		for k := range values {
			seen[k] = struct{}{}
		}
	}

	load := godotenv.Load
	if input.Overload {
		load = godotenv.Overload
	}
	if err := load(files...); err != nil {
		return nil, fmt.Errorf("failed to load env files: %w", err)
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	logger.Debug("Loaded env files.", "files", files, "keys", len(keys))

	return &Output{Keys: keys}, nil
}

// Register registers the handler with the engine.
func (m *Module) Register(h *handlers.Handlers) {
	handlers.Register(h, Kind, OnRunDotenv)
}
