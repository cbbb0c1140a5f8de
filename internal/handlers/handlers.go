// Package handlers maps action kinds, as named in a taskfile's `run` blocks,
// to the compiled Go functions that implement them.
package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
)

// Module is the interface that all action modules implement to be registered.
type Module interface {
	Register(h *Handlers)
}

// Func is the type-erased form of an action implementation.
type Func func(ctx context.Context, input any) (any, error)

// RegisteredHandler holds the compiled Go parts of an action kind.
type RegisteredHandler struct {
	// Input returns a pointer to a fresh, zero input struct for gohcl decoding.
	Input func() any
	Fn    Func
}

// Handlers holds all the registered handlers
type Handlers struct {
	all    map[string]*RegisteredHandler
	logger *slog.Logger
}

// Option configures Handlers.
type Option func(*Handlers)

// WithLogger sets the logger used when handlers are registered.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handlers) {
		h.logger = logger
	}
}

// New creates and initializes a new Handlers instance.
func New(opts ...Option) *Handlers {
	h := &Handlers{
		all:    make(map[string]*RegisteredHandler),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterHandler registers a Go function for an action kind.
func (h *Handlers) RegisterHandler(kind string, handler *RegisteredHandler) {
	if _, exists := h.all[kind]; exists {
		panic(fmt.Sprintf("action handler with kind '%s' already registered", kind))
	}
	h.logger.Debug("Registering action handler.", "kind", kind)
	h.all[kind] = handler
}

// Get returns the handler registered for kind.
func (h *Handlers) Get(kind string) (*RegisteredHandler, bool) {
	handler, ok := h.all[kind]
	return handler, ok
}

// Kinds returns the registered action kinds in sorted order.
func (h *Handlers) Kinds() []string {
	kinds := make([]string, 0, len(h.all))
	for k := range h.all {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Register is a typed convenience over RegisterHandler: the input struct I is
// allocated per task and passed to fn already decoded.
func Register[I any](h *Handlers, kind string, fn func(ctx context.Context, input *I) (any, error)) {
	h.RegisterHandler(kind, &RegisteredHandler{
		Input: func() any { return new(I) },
		Fn: func(ctx context.Context, input any) (any, error) {
			in, ok := input.(*I)
			if !ok {
				return nil, fmt.Errorf("action %q: unexpected input type %T", kind, input)
			}
			return fn(ctx, in)
		},
	})
}
