package registry

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/vk/gridtask/internal/taskname"
)

// Registry holds all the task definitions for a single application instance.
type Registry struct {
	mu     sync.RWMutex
	tasks  map[string]*Task
	order  []string
	logger *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used to report redefinitions.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// New creates and initializes a new, empty Registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		tasks:  make(map[string]*Task),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register stores a task under name, replacing any previous definition with
// the same name. A replaced task keeps its original position in registration
// order. deps may be nil and may name tasks that are not registered yet.
func (r *Registry) Register(name string, deps []string, action Action, opts ...TaskOption) (*Task, error) {
	if err := taskname.Validate(name); err != nil {
		return nil, fmt.Errorf("register task: %w", err)
	}
	task := newTask(name, deps, action, opts...)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tasks[name]; exists {
		r.logger.Warn("Task redefined, previous definition replaced.", "task", name)
	} else {
		r.order = append(r.order, name)
	}
	r.tasks[name] = task
	r.logger.Debug("Task registered.", "task", name, "deps", task.Deps, "has_action", task.HasAction())
	return task, nil
}

// Names returns all registered task names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// Lookup returns the task registered under exactly name.
func (r *Registry) Lookup(name string) (*Task, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tasks[name]
	return t, ok
}

// Tasks returns a snapshot of all tasks in registration order.
func (r *Registry) Tasks() []*Task {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tasks := make([]*Task, 0, len(r.order))
	for _, name := range r.order {
		tasks = append(tasks, r.tasks[name])
	}
	return tasks
}

// Len returns the number of registered tasks.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
