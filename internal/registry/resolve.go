package registry

import (
	"iter"

	"github.com/vk/gridtask/internal/result"
	"github.com/vk/gridtask/internal/taskname"
)

// Resolve expands a requested name into the tasks it selects.
//
// requester is the task whose dependency list contains pattern; it is nil for
// top-level requests and only used to attribute an unknown-task error.
//
// A wildcard pattern never fails: it yields the matching tasks in
// registration order, possibly none. The sequence reads the registry each
// time it is iterated. Any other pattern must name a registered task exactly,
// otherwise Resolve returns a *result.BuildError wrapping
// result.ErrUnknownTask.
func (r *Registry) Resolve(pattern string, requester *Task) (iter.Seq[*Task], error) {
	p := taskname.Parse(pattern)
	if p.IsWildcard() {
		return r.matching(p), nil
	}

	task, ok := r.Lookup(pattern)
	if !ok {
		by := ""
		if requester != nil {
			by = requester.Name
		}
		return nil, result.UnknownTask(pattern, by)
	}
	return func(yield func(*Task) bool) {
		yield(task)
	}, nil
}

func (r *Registry) matching(p taskname.Pattern) iter.Seq[*Task] {
	return func(yield func(*Task) bool) {
		// Snapshot so that yield may register tasks without deadlocking.
		for _, t := range r.Tasks() {
			if !p.Matches(t.Name) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}
