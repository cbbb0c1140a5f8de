package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/gridtask/internal/config"
	"github.com/vk/gridtask/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	environ func() map[string]string
}

// NewLoader creates a new HCL taskfile loader.
func NewLoader() *Loader {
	return &Loader{environ: environ}
}

// parsedFile is a taskfile whose `vars` blocks have been split off.
type parsedFile struct {
	path   string
	vars   []*hcl.Block
	remain hcl.Body
}

// Load parses every file, evaluates all `vars` blocks, then decodes the
// `task` blocks with var.* and env.* in scope. Files are processed in the
// given order; a later `vars` attribute overrides an earlier one.
func (l *Loader) Load(ctx context.Context, files ...string) (*config.Model, config.Converter, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "file_count", len(files))

	parser := hclparse.NewParser()
	parsed := make([]parsedFile, 0, len(files))
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		content, remain, diags := hclFile.Body.PartialContent(varsSchema)
		if diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}
		parsed = append(parsed, parsedFile{path: file, vars: content.Blocks, remain: remain})
	}

	baseCtx, err := baseEvalContext(l.environ())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build evaluation context: %w", err)
	}

	vars := make(map[string]cty.Value)
	for _, pf := range parsed {
		for _, block := range pf.vars {
			if err := evalVars(block, baseCtx, vars); err != nil {
				return nil, nil, fmt.Errorf("failed to evaluate vars in %s: %w", pf.path, err)
			}
		}
	}
	logger.Debug("Vars evaluated.", "count", len(vars))
	evalCtx := withVars(baseCtx, vars)

	model := &config.Model{
		Vars:  vars,
		Files: files,
	}
	for _, pf := range parsed {
		var root fileRoot
		if diags := gohcl.DecodeBody(pf.remain, evalCtx, &root); diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to decode HCL file %s: %w", pf.path, diags)
		}
		for _, tb := range root.Tasks {
			model.Tasks = append(model.Tasks, translateTask(tb, pf.path, evalCtx))
		}
		logger.Debug("Loaded taskfile.", "file", pf.path, "tasks", len(root.Tasks))
	}

	logger.Debug("HCL loading complete.", "files", len(files), "tasks", len(model.Tasks))
	return model, NewConverter(), nil
}

func evalVars(block *hcl.Block, evalCtx *hcl.EvalContext, into map[string]cty.Value) error {
	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return diags
	}
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(evalCtx)
		if diags.HasErrors() {
			return diags
		}
		into[name] = val
	}
	return nil
}

// translateTask converts the HCL-specific task schema into the agnostic model.
func translateTask(tb *taskBlock, file string, evalCtx *hcl.EvalContext) *config.Task {
	t := &config.Task{
		Name:        tb.Name,
		Description: tb.Description,
		Deps:        tb.Deps,
		File:        file,
	}
	if tb.Run != nil {
		t.Action = &config.Action{
			Kind:        tb.Run.Kind,
			Body:        tb.Run.Body,
			EvalContext: evalCtx,
		}
	}
	return t
}
