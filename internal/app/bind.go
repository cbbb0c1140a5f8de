package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vk/gridtask/internal/config"
	"github.com/vk/gridtask/internal/handlers"
	"github.com/vk/gridtask/internal/registry"
)

// errUnknownKind is returned when a `run` block names no registered handler.
var errUnknownKind = errors.New("unknown action kind")

// bindTasks registers every task of the model, in order, with an action that
// calls the handler for its `run` block. Arguments are decoded once, here.
func bindTasks(ctx context.Context, reg *registry.Registry, h *handlers.Handlers, model *config.Model, converter config.Converter) error {
	for _, t := range model.Tasks {
		action, err := bindAction(ctx, h, t, converter)
		if err != nil {
			return fmt.Errorf("%s: task %q: %w", t.File, t.Name, err)
		}
		if _, err := reg.Register(t.Name, t.Deps, action, registry.WithDescription(t.Description)); err != nil {
			return fmt.Errorf("%s: %w", t.File, err)
		}
	}
	return nil
}

func bindAction(ctx context.Context, h *handlers.Handlers, t *config.Task, converter config.Converter) (registry.Action, error) {
	if t.Action == nil {
		return nil, nil
	}

	handler, ok := h.Get(t.Action.Kind)
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", errUnknownKind, t.Action.Kind, strings.Join(h.Kinds(), ", "))
	}

	input := handler.Input()
	if err := converter.DecodeAction(ctx, t.Action, input); err != nil {
		return nil, err
	}

	return func(ctx context.Context) (any, error) {
		return handler.Fn(ctx, input)
	}, nil
}
