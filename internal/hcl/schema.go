package hcl

import (
	"github.com/hashicorp/hcl/v2"
)

// varsSchema extracts the `vars` blocks before the rest of a file is
// decoded, because task bodies are evaluated with the resulting var.* values.
var varsSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "vars"},
	},
}

// fileRoot is the schema of a taskfile once its `vars` blocks are removed.
type fileRoot struct {
	Tasks []*taskBlock `hcl:"task,block"`
}

// taskBlock represents a `task` block.
type taskBlock struct {
	Name        string    `hcl:"name,label"`
	Description string    `hcl:"description,optional"`
	Deps        []string  `hcl:"deps,optional"`
	Run         *runBlock `hcl:"run,block"`
}

// runBlock represents the optional `run` block of a task. Its arguments
// depend on the kind and are decoded later against the handler's input.
type runBlock struct {
	Kind string   `hcl:"kind,label"`
	Body hcl.Body `hcl:",remain"`
}
