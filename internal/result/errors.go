package result

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownTask      = errors.New("unknown task")
	ErrDependencyFailed = errors.New("dependency failed")
	ErrDependencyCycle  = errors.New("dependency cycle")
)

// BuildError is a failure synthesized by the engine rather than raised by a
// task's own action. Kind is one of the sentinel errors above.
type BuildError struct {
	Kind      error
	Component string
	Message   string
	// Requester is the task whose dependency list referenced Component, if any.
	Requester string
}

func (e *BuildError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func (e *BuildError) Unwrap() error { return e.Kind }

// UnknownTask reports that name did not resolve to any registered task.
// requester is empty for names requested at the top level.
func UnknownTask(name, requester string) *BuildError {
	msg := fmt.Sprintf("task %q is not defined", name)
	if requester != "" {
		msg = fmt.Sprintf("task %q is not defined (required by %q)", name, requester)
	}
	return &BuildError{
		Kind:      ErrUnknownTask,
		Component: name,
		Message:   msg,
		Requester: requester,
	}
}

// DependencyFailed reports that task was not run because at least one of its
// dependencies failed.
func DependencyFailed(task string) *BuildError {
	return &BuildError{
		Kind:      ErrDependencyFailed,
		Component: task,
		Message:   fmt.Sprintf("task %q not run: one or more of its dependencies failed", task),
	}
}

// DependencyCycle reports that task was reached again while it was still running.
func DependencyCycle(task, requester string) *BuildError {
	return &BuildError{
		Kind:      ErrDependencyCycle,
		Component: task,
		Message:   fmt.Sprintf("task %q depends on itself (reached again from %q)", task, requester),
		Requester: requester,
	}
}
