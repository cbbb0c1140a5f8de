package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/vk/gridtask/internal/app"
	"github.com/vk/gridtask/internal/ctxlog"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// usageError wraps a message in the exit code reserved for bad invocations.
func usageError(msg string) *ExitError {
	return &ExitError{Code: 2, Message: msg}
}

// pathList collects a repeatable path flag.
type pathList []string

func (p *pathList) String() string {
	return strings.Join(*p, ",")
}

func (p *pathList) Set(v string) error {
	*p = append(*p, v)
	return nil
}

// splitList splits a comma-separated flag value, dropping empty entries.
func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
// Diagnostics go to the logger carried by ctx.
func Parse(ctx context.Context, args []string, output io.Writer) (*app.Config, bool, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("gridtask", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
gridtask - A dependency-graph task runner.

Usage:
  gridtask [options] [TASK...]

Arguments:
  TASK
    A task name or a '*:suffix' pattern. Defaults to 'default'.

Options:
`)
		flagSet.PrintDefaults()
	}

	var files pathList
	flagSet.Var(&files, "file", "Taskfile, directory or glob (repeatable). Default: "+app.DefaultTaskfile)
	flagSet.Var(&files, "f", "Taskfile, directory or glob (shorthand).")
	listFlag := flagSet.Bool("list", false, "List tasks with their descriptions and exit.")
	noColorFlag := flagSet.Bool("no-color", false, "Disable colored output.")
	envFileFlag := flagSet.String("env-file", "", "Comma-separated .env files to load before the taskfiles.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, usageError(err.Error())
	}
	logger.Debug("Arguments parsed successfully.", "tasks", flagSet.Args())

	config, err := app.NewConfig(app.Config{
		Paths:           files,
		Tasks:           flagSet.Args(),
		EnvFiles:        splitList(*envFileFlag),
		List:            *listFlag,
		NoColor:         *noColorFlag,
		HealthcheckPort: *healthPortFlag,
		LogFormat:       *logFormatFlag,
		LogLevel:        *logLevelFlag,
	})
	if err != nil {
		return nil, false, usageError(err.Error())
	}

	logger.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
