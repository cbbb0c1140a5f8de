package runner

import (
	"github.com/vk/gridtask/internal/registry"
	"github.com/vk/gridtask/internal/result"
)

// State is the per-run lifecycle of a task.
type State int

const (
	Unvisited State = iota
	Running
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unvisited"
	}
}

// memo is the state of every task visited during one Run call. It is keyed
// by task pointer so a definition replaced mid-run keeps its own entry.
type memo struct {
	states  map[*registry.Task]State
	results map[*registry.Task]result.Result
	cycles  map[edge]struct{}
}

// edge is a dependency step from parent into task.
type edge struct {
	task, parent *registry.Task
}

func newMemo() *memo {
	return &memo{
		states:  make(map[*registry.Task]State),
		results: make(map[*registry.Task]result.Result),
		cycles:  make(map[edge]struct{}),
	}
}

func (m *memo) state(t *registry.Task) State {
	return m.states[t]
}

func (m *memo) start(t *registry.Task) {
	m.states[t] = Running
}

// finish stores the terminal result of t.
func (m *memo) finish(t *registry.Task, res result.Result) {
	if res.IsFailure() {
		m.states[t] = Failed
	} else {
		m.states[t] = Succeeded
	}
	m.results[t] = res
}

// lookup returns the memoized result of t if it reached a terminal state.
func (m *memo) lookup(t *registry.Task) (result.Result, bool) {
	res, ok := m.results[t]
	return res, ok
}

// markCycle records that parent reached the running task t and reports
// whether this is the first time it did so in the run.
func (m *memo) markCycle(t, parent *registry.Task) bool {
	e := edge{task: t, parent: parent}
	if _, seen := m.cycles[e]; seen {
		return false
	}
	m.cycles[e] = struct{}{}
	return true
}
