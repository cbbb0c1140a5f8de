// Package exec implements the `exec` action, which runs a command without a
// shell. Quoting follows POSIX shell rules; pipes and redirection do not.
package exec

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"

	"github.com/google/shlex"
	"github.com/vk/gridtask/internal/ctxlog"
	"github.com/vk/gridtask/internal/handlers"
)

// Kind is the action kind used in `run` blocks.
const Kind = "exec"

// Module implements the handlers.Module interface for this package.
// Nil writers default to the process's stdout and stderr.
type Module struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Input defines the arguments of a `run "exec"` block.
type Input struct {
	Command string            `hcl:"command"`
	Dir     string            `hcl:"dir,optional"`
	Env     map[string]string `hcl:"env,optional"`
}

// OnRunExec runs the command and returns its exit code.
func (m *Module) OnRunExec(ctx context.Context, input *Input) (any, error) {
	logger := ctxlog.FromContext(ctx).With("action", Kind)

	args, err := shlex.Split(input.Command)
	if err != nil {
		return nil, fmt.Errorf("failed to parse command %q: %w", input.Command, err)
	}
	if len(args) == 0 {
		return nil, errors.New("command is empty")
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = input.Dir
	cmd.Stdout = orDefault(m.Stdout, os.Stdout)
	cmd.Stderr = orDefault(m.Stderr, os.Stderr)
	if len(input.Env) > 0 {
		cmd.Env = append(os.Environ(), envList(input.Env)...)
	}

	logger.Debug("Running command.", "argv", args, "dir", input.Dir)
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), fmt.Errorf("command %q exited with code %d", args[0], exitErr.ExitCode())
		}
		return nil, fmt.Errorf("failed to run %q: %w", args[0], err)
	}
	return 0, nil
}

// Register registers the handler with the engine.
func (m *Module) Register(h *handlers.Handlers) {
	handlers.Register(h, Kind, m.OnRunExec)
}

func orDefault(w, def io.Writer) io.Writer {
	if w == nil {
		return def
	}
	return w
}

// envList renders env as KEY=VALUE pairs in key order.
func envList(env map[string]string) []string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+env[k])
	}
	return out
}
