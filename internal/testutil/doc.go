// Package testutil holds helpers shared by tests across packages: a
// thread-safe buffer for capturing output and a reporter that records the
// events it receives.
package testutil
