// Package hcl provides the concrete HCL implementation of the taskfile
// loading and action decoding interfaces defined in the `config` package.
// It is responsible for file parsing, evaluation of `vars`, translation of
// `task` blocks into the agnostic model, and gohcl binding of `run` block
// arguments into handler input structs.
package hcl
