package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/vk/gridtask/internal/config"
	"github.com/vk/gridtask/internal/ctxlog"
)

// Converter is the HCL-specific implementation of the config.Converter interface.
type Converter struct{}

// NewConverter creates a new HCL converter.
func NewConverter() *Converter {
	return &Converter{}
}

// DecodeAction evaluates the arguments of a `run` block and populates target,
// which must be a pointer to a struct with `hcl` tags.
func (c *Converter) DecodeAction(ctx context.Context, action *config.Action, target any) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Decoding action arguments.", "kind", action.Kind, "target", fmt.Sprintf("%T", target))

	if diags := gohcl.DecodeBody(action.Body, action.EvalContext, target); diags.HasErrors() {
		return fmt.Errorf("invalid arguments for %q action: %w", action.Kind, diags)
	}
	return nil
}
