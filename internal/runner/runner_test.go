package runner

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/gridtask/internal/executor"
	"github.com/vk/gridtask/internal/registry"
	"github.com/vk/gridtask/internal/result"
	"github.com/vk/gridtask/internal/testutil"
)

// journal records the order in which actions start and end.
type journal struct {
	mu      sync.Mutex
	entries []string
}

func (j *journal) add(s string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, s)
}

func (j *journal) all() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.entries...)
}

// recorded returns an action that journals its begin and end.
func (j *journal) recorded(name string) registry.Action {
	return func(context.Context) (any, error) {
		j.add(name + ":begin")
		j.add(name + ":end")
		return name, nil
	}
}

func (j *journal) failing(name string) registry.Action {
	return func(context.Context) (any, error) {
		j.add(name + ":begin")
		return nil, errors.New(name + " failed")
	}
}

type fixture struct {
	reg      *registry.Registry
	rec      *testutil.Recorder
	runner   *Runner
	journal  *journal
	register func(name string, deps []string, action registry.Action)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	reg := registry.New()
	rec := &testutil.Recorder{}
	f := &fixture{
		reg:     reg,
		rec:     rec,
		runner:  New(reg, executor.New(rec), rec),
		journal: &journal{},
	}
	f.register = func(name string, deps []string, action registry.Action) {
		t.Helper()
		_, err := reg.Register(name, deps, action)
		require.NoError(t, err)
	}
	return f
}

func TestRun_MemoizesSharedDependency(t *testing.T) {
	f := newFixture(t)
	calls := 0
	f.register("shared", nil, func(context.Context) (any, error) {
		calls++
		return "artifact", nil
	})
	f.register("left", []string{"shared"}, nil)
	f.register("right", []string{"shared"}, nil)
	f.register("all", []string{"left", "right", "shared"}, nil)

	res := f.runner.Run(context.Background(), "all", "shared")

	require.True(t, res.IsSuccess(), "unexpected failure: %v", res.Err())
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, f.rec.Count(testutil.EventStart, "shared"))
	assert.Equal(t, 1, f.rec.Count(testutil.EventFinish, "shared"))
}

func TestRun_DependentsObserveSameResult(t *testing.T) {
	f := newFixture(t)
	f.register("shared", nil, func(context.Context) (any, error) { return &struct{ n int }{1}, nil })
	f.register("a", []string{"shared"}, nil)
	f.register("b", []string{"shared"}, nil)

	reg := f.reg
	shared, _ := reg.Lookup("shared")
	a, _ := reg.Lookup("a")
	b, _ := reg.Lookup("b")

	r := &run{Runner: f.runner, memo: newMemo()}
	r.execute(context.Background(), a, nil)
	first, ok := r.memo.lookup(shared)
	require.True(t, ok)
	r.execute(context.Background(), b, nil)
	second, ok := r.memo.lookup(shared)
	require.True(t, ok)

	assert.Same(t, first.Value(), second.Value())
	assert.Equal(t, Succeeded, r.memo.state(shared))
}

func TestRun_DependenciesRunInDeclarationOrder(t *testing.T) {
	f := newFixture(t)
	f.register("A", nil, f.journal.recorded("A"))
	f.register("B", nil, f.journal.recorded("B"))
	f.register("parent", []string{"A", "B"}, f.journal.recorded("parent"))

	for range 3 {
		f.journal.entries = nil
		res := f.runner.Run(context.Background(), "parent")
		require.True(t, res.IsSuccess())
		assert.Equal(t, []string{"A:begin", "A:end", "B:begin", "B:end", "parent:begin", "parent:end"}, f.journal.all())
	}
}

func TestRun_SiblingsRunAfterFailure(t *testing.T) {
	f := newFixture(t)
	f.register("A", nil, f.journal.failing("A"))
	f.register("B", nil, f.journal.recorded("B"))
	f.register("parent", []string{"A", "B"}, f.journal.recorded("parent"))

	res := f.runner.Run(context.Background(), "parent")

	require.True(t, res.IsFailure())
	assert.Equal(t, []string{"A:begin", "B:begin", "B:end"}, f.journal.all())
	require.ErrorIs(t, res.Err(), result.ErrDependencyFailed)
	var be *result.BuildError
	require.True(t, errors.As(res.Err(), &be))
	assert.Equal(t, "parent", be.Component)
	assert.Contains(t, res.Err().Error(), `"parent"`)
	assert.Equal(t, 0, f.rec.Count(testutil.EventStart, "parent"))

	// One detail for A's own error and one for parent's synthesized failure.
	failures := f.rec.Failures()
	require.Len(t, failures, 2)
	assert.EqualError(t, failures[0], "A failed")
	assert.ErrorIs(t, failures[1], result.ErrDependencyFailed)
}

func TestRun_FailureReportedOnceWhenMemoized(t *testing.T) {
	f := newFixture(t)
	f.register("bad", nil, f.journal.failing("bad"))
	f.register("x", []string{"bad"}, nil)
	f.register("y", []string{"bad"}, nil)
	f.register("top", []string{"x", "y"}, nil)

	res := f.runner.Run(context.Background(), "top")

	require.True(t, res.IsFailure())
	assert.Equal(t, []string{"bad:begin"}, f.journal.all())
	// bad, x, y, top: each reported exactly once.
	assert.Len(t, f.rec.Failures(), 4)
	assert.Equal(t, 1, f.rec.Count(testutil.EventFinish, "bad"))
}

func TestRun_WildcardDependency(t *testing.T) {
	f := newFixture(t)
	f.register("build:js", nil, f.journal.recorded("build:js"))
	f.register("build:css", nil, f.journal.recorded("build:css"))
	f.register("lint:js", nil, f.journal.recorded("lint:js"))
	f.register("js", []string{"*:js", "*:missing"}, nil)

	res := f.runner.Run(context.Background(), "js")

	require.True(t, res.IsSuccess())
	assert.Equal(t, []string{"build:js:begin", "build:js:end", "lint:js:begin", "lint:js:end"}, f.journal.all())
}

func TestRun_UnknownTopLevelTask(t *testing.T) {
	f := newFixture(t)

	res := f.runner.Run(context.Background(), "does-not-exist")

	require.True(t, res.IsFailure())
	require.ErrorIs(t, res.Err(), result.ErrUnknownTask)
	assert.Contains(t, res.Err().Error(), "does-not-exist")
	var be *result.BuildError
	require.True(t, errors.As(res.Err(), &be))
	assert.Empty(t, be.Requester)
	assert.NotContains(t, res.Err().Error(), "required by")
}

func TestRun_UnknownDependencyIsAttributed(t *testing.T) {
	f := newFixture(t)
	f.register("later", nil, f.journal.recorded("later"))
	f.register("T", []string{"ghost", "later"}, f.journal.recorded("T"))

	res := f.runner.Run(context.Background(), "T")

	require.True(t, res.IsFailure())
	var be *result.BuildError
	require.True(t, errors.As(res.Err(), &be))
	assert.ErrorIs(t, be, result.ErrUnknownTask)
	assert.Equal(t, "ghost", be.Component)
	assert.Equal(t, "T", be.Requester)
	assert.Empty(t, f.journal.all(), "resolution failure must stop the dependency scan")
	require.Len(t, f.rec.Failures(), 1)
}

func TestRun_NoActionTask(t *testing.T) {
	f := newFixture(t)
	f.register("empty", nil, nil)

	res := f.runner.Run(context.Background(), "empty")

	assert.True(t, res.IsSuccess())
	assert.Nil(t, res.Value())
	assert.Empty(t, f.rec.Events())
}

func TestRun_TopLevelShortCircuit(t *testing.T) {
	f := newFixture(t)
	f.register("ok", nil, f.journal.recorded("ok"))
	f.register("bad", nil, f.journal.failing("bad"))
	f.register("ok2", nil, f.journal.recorded("ok2"))

	res := f.runner.Run(context.Background(), "ok", "bad", "ok2")

	require.True(t, res.IsFailure())
	assert.EqualError(t, res.Err(), "bad failed")
	assert.Equal(t, []string{"ok:begin", "ok:end", "bad:begin"}, f.journal.all())
}

func TestRun_TopLevelWildcardShortCircuit(t *testing.T) {
	f := newFixture(t)
	f.register("a:test", nil, f.journal.failing("a:test"))
	f.register("b:test", nil, f.journal.recorded("b:test"))

	res := f.runner.Run(context.Background(), "*:test")

	require.True(t, res.IsFailure())
	assert.Equal(t, []string{"a:test:begin"}, f.journal.all())
}

func TestRun_EmptyRequestSucceeds(t *testing.T) {
	f := newFixture(t)
	assert.True(t, f.runner.Run(context.Background()).IsSuccess())
	assert.True(t, f.runner.Run(context.Background(), "*:nothing").IsSuccess())
}

func TestRun_MemoIsScopedToOneRun(t *testing.T) {
	f := newFixture(t)
	calls := 0
	f.register("once", nil, func(context.Context) (any, error) {
		calls++
		return nil, nil
	})

	require.True(t, f.runner.Run(context.Background(), "once").IsSuccess())
	require.True(t, f.runner.Run(context.Background(), "once").IsSuccess())
	assert.Equal(t, 2, calls)
}

func TestRun_RepeatedDependencyRunsOnce(t *testing.T) {
	f := newFixture(t)
	f.register("dep", nil, f.journal.recorded("dep"))
	f.register("t", []string{"dep", "dep", "*:nope", "dep"}, nil)

	require.True(t, f.runner.Run(context.Background(), "t").IsSuccess())
	assert.Equal(t, []string{"dep:begin", "dep:end"}, f.journal.all())
}

func TestRun_Cycle(t *testing.T) {
	f := newFixture(t)
	f.register("a", []string{"b"}, f.journal.recorded("a"))
	f.register("b", []string{"a"}, f.journal.recorded("b"))

	res := f.runner.Run(context.Background(), "a")

	require.True(t, res.IsFailure())
	assert.ErrorIs(t, res.Err(), result.ErrDependencyFailed)
	assert.Empty(t, f.journal.all())

	var cycle *result.BuildError
	for _, err := range f.rec.Failures() {
		if errors.Is(err, result.ErrDependencyCycle) {
			require.True(t, errors.As(err, &cycle))
		}
	}
	require.NotNil(t, cycle, "cycle must be reported")
	assert.Equal(t, "a", cycle.Component)
	assert.Equal(t, "b", cycle.Requester)
}

func TestRun_CycleReportedOncePerEdge(t *testing.T) {
	f := newFixture(t)
	f.register("a", []string{"a", "a"}, f.journal.recorded("a"))

	res := f.runner.Run(context.Background(), "a")

	require.True(t, res.IsFailure())
	assert.ErrorIs(t, res.Err(), result.ErrDependencyFailed)
	assert.Empty(t, f.journal.all())

	failures := f.rec.Failures()
	require.Len(t, failures, 2)
	assert.ErrorIs(t, failures[0], result.ErrDependencyCycle)
	assert.ErrorIs(t, failures[1], result.ErrDependencyFailed)
}

func TestRun_RedefinitionMidRunKeepsIdentity(t *testing.T) {
	f := newFixture(t)
	calls := 0
	f.register("dep", nil, func(context.Context) (any, error) {
		calls++
		return nil, nil
	})
	f.register("redefine", []string{"dep"}, func(context.Context) (any, error) {
		_, err := f.reg.Register("dep", nil, func(context.Context) (any, error) {
			calls += 10
			return nil, nil
		})
		return nil, err
	})
	f.register("after", []string{"dep"}, nil)

	res := f.runner.Run(context.Background(), "redefine", "after")

	require.True(t, res.IsSuccess())
	// The replacement is a different task, so it runs once in its own right.
	assert.Equal(t, 11, calls)
}

func TestRun_ExplicitResultFromAction(t *testing.T) {
	f := newFixture(t)
	f.register("soft", nil, func(context.Context) (any, error) {
		return result.Failure(errors.New("soft failure")), nil
	})

	res := f.runner.Run(context.Background(), "soft")

	require.True(t, res.IsFailure())
	assert.EqualError(t, res.Err(), "soft failure")
	assert.Equal(t, result.OutcomeFailure, f.rec.Events()[1].Outcome)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "unvisited", Unvisited.String())
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "succeeded", Succeeded.String())
	assert.Equal(t, "failed", Failed.String())
}
