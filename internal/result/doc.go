// Package result defines the two-variant outcome type returned by task
// execution and name resolution, together with the typed build errors the
// engine synthesizes.
//
// A Result is either a Success carrying an optional value or a Failure
// carrying an error. Exactly one variant is active and a Result never
// changes after construction, so it is safe to copy and to share between
// every dependent that observes it.
package result
