package reporter

import (
	"errors"
	"log/slog"
	"time"

	"github.com/vk/gridtask/internal/result"
)

// Log writes events as structured log records.
type Log struct {
	logger *slog.Logger
}

// NewLog creates a reporter that logs to logger.
func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) OnStart(task string) {
	l.logger.Debug("Task started.", "task", task)
}

func (l *Log) OnFinish(task string, outcome result.Outcome, duration time.Duration) {
	l.logger.Info("Task finished.", "task", task, "outcome", string(outcome), "duration_ms", duration.Milliseconds())
}

func (l *Log) OnFailureDetail(err error) {
	var be *result.BuildError
	if errors.As(err, &be) {
		l.logger.Error("Task failed.", "task", be.Component, "requested_by", be.Requester, "error", err)
		return
	}
	l.logger.Error("Task failed.", "error", err)
}
