// Package registry stores the task definitions of a single application
// instance and resolves requested names against them.
//
// The Registry maps a task name to its definition: an ordered list of
// dependency patterns and an optional action. It is populated before a run
// starts, either directly from Go code or from a loaded taskfile, and is
// passed explicitly to the runner; there is no process-wide registry.
//
// Resolution turns a requested name into the tasks it selects. Exact names
// select one task; `*:suffix` patterns select every task whose name ends in
// `:suffix`, in registration order, evaluated against the registry each time
// the returned sequence is iterated.
package registry
