package registry

import (
	"context"
	"slices"
)

// Action is the work a task performs. A returned error marks the task as
// failed. A returned result.Result is used as the task's result unchanged;
// any other value becomes the value of a successful result.
type Action func(ctx context.Context) (any, error)

// Task is an immutable, registered unit of work.
type Task struct {
	Name        string
	Description string
	// Deps are dependency patterns, run in order before Action.
	Deps   []string
	Action Action
}

// HasAction reports whether the task does work of its own, as opposed to
// only grouping its dependencies.
func (t *Task) HasAction() bool {
	return t.Action != nil
}

// TaskOption configures optional attributes of a task at registration.
type TaskOption func(*Task)

// WithDescription sets the human-readable description shown by listings.
func WithDescription(desc string) TaskOption {
	return func(t *Task) {
		t.Description = desc
	}
}

func newTask(name string, deps []string, action Action, opts ...TaskOption) *Task {
	t := &Task{
		Name:   name,
		Deps:   slices.Clone(deps),
		Action: action,
	}
	if t.Deps == nil {
		t.Deps = []string{}
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}
