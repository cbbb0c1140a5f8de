package runner

import (
	"context"

	"github.com/vk/gridtask/internal/ctxlog"
	"github.com/vk/gridtask/internal/executor"
	"github.com/vk/gridtask/internal/registry"
	"github.com/vk/gridtask/internal/reporter"
	"github.com/vk/gridtask/internal/result"
)

// Runner executes tasks from a registry.
type Runner struct {
	registry *registry.Registry
	executor *executor.Executor
	reporter reporter.Reporter
}

// New creates a Runner. A nil rep discards failure details.
func New(reg *registry.Registry, exec *executor.Executor, rep reporter.Reporter) *Runner {
	if rep == nil {
		rep = reporter.Nop{}
	}
	return &Runner{
		registry: reg,
		executor: exec,
		reporter: rep,
	}
}

// Run executes each requested name in order and returns the overall result.
//
// Each name is resolved without requester context and every task it selects
// is executed with its dependencies. The first failing task ends the run and
// its failure is returned; later names and later wildcard matches are not
// attempted. A name that does not resolve fails the run with an
// unknown-task error.
func (r *Runner) Run(ctx context.Context, names ...string) result.Result {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Run started.", "requested", names)

	run := &run{Runner: r, memo: newMemo()}
	for _, name := range names {
		tasks, err := r.registry.Resolve(name, nil)
		if err != nil {
			logger.Debug("Requested name did not resolve.", "name", name)
			return result.Failure(err)
		}
		for task := range tasks {
			if res := run.execute(ctx, task, nil); res.IsFailure() {
				logger.Debug("Run stopped at failing task.", "task", task.Name)
				return res
			}
		}
	}

	logger.Debug("Run finished.", "tasks_visited", len(run.memo.results))
	return result.Success(nil)
}

// run is the state of a single Run call.
type run struct {
	*Runner
	memo *memo
}

// execute runs task after its dependencies and memoizes the outcome. parent
// is the task that reached it, nil at the top level.
func (r *run) execute(ctx context.Context, task, parent *registry.Task) result.Result {
	if res, ok := r.memo.lookup(task); ok {
		return res
	}
	if r.memo.state(task) == Running {
		by := ""
		if parent != nil {
			by = parent.Name
		}
		res := result.Failure(result.DependencyCycle(task.Name, by))
		if r.memo.markCycle(task, parent) {
			r.reporter.OnFailureDetail(res.Err())
		}
		return res
	}

	r.memo.start(task)
	res := r.runTask(ctx, task)
	r.memo.finish(task, res)

	if res.IsFailure() {
		r.reporter.OnFailureDetail(res.Err())
	}
	return res
}

func (r *run) runTask(ctx context.Context, task *registry.Task) result.Result {
	logger := ctxlog.FromContext(ctx).With("task", task.Name)

	failed := false
	for _, pattern := range task.Deps {
		deps, err := r.registry.Resolve(pattern, task)
		if err != nil {
			return result.Failure(err)
		}
		for dep := range deps {
			if r.execute(ctx, dep, task).IsFailure() {
				logger.Debug("Dependency failed, continuing with siblings.", "dependency", dep.Name)
				failed = true
			}
		}
	}

	if failed {
		return result.Failure(result.DependencyFailed(task.Name))
	}
	return r.executor.Execute(ctx, task)
}
