// Package reporter defines the observer that receives task lifecycle events
// from the engine and provides the implementations used by the application:
// a coloured console reporter, a structured log reporter, and a fan-out.
//
// The engine guarantees one OnStart and one OnFinish per action invocation
// and one OnFailureDetail per failed result at the point it is first
// computed. Memoized results never produce events.
package reporter
