// Package runner executes requested tasks together with their dependency
// graph.
//
// Run walks the graph depth first. Each task's dependency patterns are
// resolved and executed one at a time in declaration order, and a task's own
// action only runs when every dependency succeeded. Results are memoized per
// Run call, keyed by task identity, so a task runs at most once per call no
// matter how many dependents reach it.
//
// A failing dependency does not stop its siblings: every declared dependency
// is attempted, and the parent then fails with a dependency error naming
// itself. At the top level the first failing request ends the run.
package runner
