package testutil

import (
	"fmt"
	"sync"
	"time"

	"github.com/vk/gridtask/internal/result"
)

// EventKind identifies the reporter callback an Event came from.
type EventKind string

const (
	EventStart   EventKind = "start"
	EventFinish  EventKind = "finish"
	EventFailure EventKind = "failure"
)

// Event is one recorded reporter callback.
type Event struct {
	Kind     EventKind
	Task     string
	Outcome  result.Outcome
	Duration time.Duration
	Err      error
}

func (e Event) String() string {
	switch e.Kind {
	case EventFinish:
		return fmt.Sprintf("finish %s %s", e.Task, e.Outcome)
	case EventFailure:
		return fmt.Sprintf("failure %v", e.Err)
	default:
		return fmt.Sprintf("%s %s", e.Kind, e.Task)
	}
}

// Recorder is a reporter.Reporter that keeps every event in arrival order.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) add(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *Recorder) OnStart(task string) {
	r.add(Event{Kind: EventStart, Task: task})
}

func (r *Recorder) OnFinish(task string, outcome result.Outcome, duration time.Duration) {
	r.add(Event{Kind: EventFinish, Task: task, Outcome: outcome, Duration: duration})
}

func (r *Recorder) OnFailureDetail(err error) {
	r.add(Event{Kind: EventFailure, Err: err})
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Count returns how many events of kind were recorded for task. For
// EventFailure the task is ignored.
func (r *Recorder) Count(kind EventKind, task string) int {
	n := 0
	for _, e := range r.Events() {
		if e.Kind != kind {
			continue
		}
		if kind == EventFailure || e.Task == task {
			n++
		}
	}
	return n
}

// Failures returns the errors of all failure-detail events.
func (r *Recorder) Failures() []error {
	var errs []error
	for _, e := range r.Events() {
		if e.Kind == EventFailure {
			errs = append(errs, e.Err)
		}
	}
	return errs
}
