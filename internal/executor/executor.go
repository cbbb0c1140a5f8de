// Package executor runs the action of a single task and turns whatever the
// action does (return a value, return an error, return a result, or panic)
// into a result.Result.
package executor

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/vk/gridtask/internal/ctxlog"
	"github.com/vk/gridtask/internal/registry"
	"github.com/vk/gridtask/internal/reporter"
	"github.com/vk/gridtask/internal/result"
)

// Executor invokes task actions and reports their lifecycle.
type Executor struct {
	reporter reporter.Reporter
	now      func() time.Time
}

// Option configures an Executor.
type Option func(*Executor)

// WithClock replaces the time source used to measure durations.
func WithClock(now func() time.Time) Option {
	return func(e *Executor) {
		e.now = now
	}
}

// New creates an Executor that reports to rep. A nil rep discards events.
func New(rep reporter.Reporter, opts ...Option) *Executor {
	if rep == nil {
		rep = reporter.Nop{}
	}
	e := &Executor{
		reporter: rep,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs task's action once and returns its result.
//
// A task without an action only groups its dependencies: it succeeds
// immediately with no value and emits no events. Otherwise one start and one
// finish event are reported around the action, and the finish event carries
// the elapsed time whatever the outcome.
func (e *Executor) Execute(ctx context.Context, task *registry.Task) result.Result {
	if !task.HasAction() {
		return result.Success(nil)
	}

	logger := ctxlog.FromContext(ctx).With("task", task.Name)
	logger.Debug("Invoking task action.")

	e.reporter.OnStart(task.Name)
	start := e.now()
	res := e.invoke(ctx, task)
	elapsed := e.now().Sub(start)
	e.reporter.OnFinish(task.Name, res.Outcome(), elapsed)

	logger.Debug("Task action returned.", "outcome", string(res.Outcome()), "duration", elapsed)
	return res
}

// invoke calls the action and classifies its return. The action's own error
// is kept as is so callers can match on it.
func (e *Executor) invoke(ctx context.Context, task *registry.Task) (res result.Result) {
	defer func() {
		if r := recover(); r != nil {
			ctxlog.FromContext(ctx).Error("Task action panicked.", "task", task.Name, "panic", r, "stack_trace", string(debug.Stack()))
			res = result.Failure(fmt.Errorf("task %s panic: %v", task.Name, r))
		}
	}()

	value, err := task.Action(ctx)
	if err != nil {
		return result.Failure(err)
	}
	if r, ok := value.(result.Result); ok {
		return r
	}
	return result.Success(value)
}
