package config

import (
	"context"
)

// Loader is the interface for a format-specific taskfile loader.
type Loader interface {
	// Load reads the given taskfiles, translates them into the
	// format-agnostic model, and returns a matching Converter.
	Load(ctx context.Context, files ...string) (*Model, Converter, error)
}

// Converter decodes the raw arguments of an action into the Go input struct
// of the handler implementing it.
type Converter interface {
	DecodeAction(ctx context.Context, action *Action, target any) error
}
