// Package config defines the format-agnostic model of a loaded taskfile,
// along with the interfaces (Loader, Converter) for loading and decoding
// configuration from a concrete format.
//
// The `config.Model` is what the application binds into the task registry.
// The HCL implementation of the interfaces lives in `internal/hcl`.
package config
