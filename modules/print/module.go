package print

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/vk/gridtask/internal/ctxlog"
	"github.com/vk/gridtask/internal/handlers"
)

// Kind is the action kind used in `run` blocks.
const Kind = "print"

// Module implements the handlers.Module interface for this package.
type Module struct {
	// Out receives the printed text. Defaults to os.Stdout.
	Out io.Writer
}

// Input defines the arguments for the print action.
type Input struct {
	Message string            `hcl:"message,optional"`
	Values  map[string]string `hcl:"values,optional"`
}

// OnRunPrint writes the message, then each value sorted by key.
func (m *Module) OnRunPrint(ctx context.Context, input *Input) (any, error) {
	ctxlog.FromContext(ctx).Debug("Printing input.", "values", len(input.Values))

	out := m.Out
	if out == nil {
		out = os.Stdout
	}

	if input.Message != "" {
		if _, err := fmt.Fprintln(out, input.Message); err != nil {
			return nil, fmt.Errorf("failed to print message: %w", err)
		}
	}

	// Sort keys for consistent output
	keys := make([]string, 0, len(input.Values))
	for k := range input.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if _, err := fmt.Fprintf(out, "      %s = %q\n", k, input.Values[k]); err != nil {
			return nil, fmt.Errorf("failed to print value %q: %w", k, err)
		}
	}

	return nil, nil
}

// Register registers the handler with the engine.
func (m *Module) Register(h *handlers.Handlers) {
	handlers.Register(h, Kind, m.OnRunPrint)
}
