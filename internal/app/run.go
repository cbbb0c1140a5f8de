package app

import (
	"context"
	"errors"

	"github.com/vk/gridtask/internal/ctxlog"
	"github.com/vk/gridtask/internal/executor"
	"github.com/vk/gridtask/internal/reporter"
	"github.com/vk/gridtask/internal/runner"
)

// RunError is returned by Run when a requested task did not succeed.
type RunError struct {
	Err error
	// Reported is set when the console reporter already printed Err.
	Reported bool
}

func (e *RunError) Error() string {
	return "run failed: " + e.Err.Error()
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// lastFailure remembers the most recent failure detail.
type lastFailure struct {
	reporter.Nop
	err error
}

func (l *lastFailure) OnFailureDetail(err error) {
	l.err = err
}

// Run executes the requested tasks. It returns a *RunError wrapping the
// failure of the first requested task that did not succeed.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		if err := a.startHealthcheckServer(ctx, a.config.HealthcheckPort); err != nil {
			return err
		}
		defer a.closeHealthcheckServer(ctx)
	}

	last := &lastFailure{}
	rep := reporter.Multi{
		reporter.NewConsole(a.outW, a.config.NoColor),
		reporter.NewLog(a.logger),
		last,
	}
	r := runner.New(a.registry, executor.New(rep), rep)

	a.logger.Info("🚀 Starting execution...", "tasks", a.config.Tasks)
	res := r.Run(ctx, a.config.Tasks...)
	if res.IsFailure() {
		return &RunError{
			Err:      res.Err(),
			Reported: last.err != nil && errors.Is(res.Err(), last.err),
		}
	}
	a.logger.Info("🏁 Execution finished.")

	a.logger.Debug("App.Run method finished.")
	return nil
}
