package reporter

import (
	"time"

	"github.com/vk/gridtask/internal/result"
)

// Reporter receives task lifecycle events.
type Reporter interface {
	OnStart(task string)
	OnFinish(task string, outcome result.Outcome, duration time.Duration)
	OnFailureDetail(err error)
}

// Nop discards all events.
type Nop struct{}

func (Nop) OnStart(string) {}
func (Nop) OnFinish(string, result.Outcome, time.Duration) {}
func (Nop) OnFailureDetail(error) {}

// Multi forwards every event to each reporter in order.
type Multi []Reporter

func (m Multi) OnStart(task string) {
	for _, r := range m {
		r.OnStart(task)
	}
}

func (m Multi) OnFinish(task string, outcome result.Outcome, duration time.Duration) {
	for _, r := range m {
		r.OnFinish(task, outcome, duration)
	}
}

func (m Multi) OnFailureDetail(err error) {
	for _, r := range m {
		r.OnFailureDetail(err)
	}
}
