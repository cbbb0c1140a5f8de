package config

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Model is the unified, format-agnostic representation of every loaded
// taskfile.
type Model struct {
	// Tasks are in declaration order across files.
	Tasks []*Task
	// Vars are the evaluated `vars` values, available to expressions as var.NAME.
	Vars map[string]cty.Value
	// Files are the taskfiles the model was loaded from.
	Files []string
}

// Task is the format-agnostic representation of a `task` block.
type Task struct {
	Name        string
	Description string
	Deps        []string
	Action      *Action
	// File is the taskfile the task was declared in.
	File string
}

// Action is the format-agnostic representation of a `run` block. Body is
// decoded lazily by a Converter against the handler registered for Kind.
type Action struct {
	Kind        string
	Body        hcl.Body
	EvalContext *hcl.EvalContext
}
