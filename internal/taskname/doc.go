// internal/taskname/doc.go

/*
Package taskname parses the names used to register and request tasks.

A task name is an arbitrary non-empty string. By convention names are grouped
with a colon, e.g. `build:js` or `lint:css`, and a request may use the
wildcard-by-suffix form `*:suffix` to select every registered task whose name
ends with `:suffix`.

This package centralizes the splitting and matching rules so the registry and
the resolver agree on them.
*/
package taskname
