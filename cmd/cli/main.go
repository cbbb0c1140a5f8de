package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/vk/gridtask/internal/app"
	"github.com/vk/gridtask/internal/cli"
	"github.com/vk/gridtask/internal/ctxlog"
	"github.com/vk/gridtask/internal/hcl"
)

// main is the entrypoint for the gridtask application.
func main() {
	// Use a minimal logger until the full one is configured.
	bootstrap := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(bootstrap)

	ctx, stop := signal.NotifyContext(ctxlog.WithLogger(context.Background(), bootstrap), os.Interrupt)
	defer stop()

	// The real main function handles errors and exit codes.
	if err := run(ctx, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		code := exitCode(err, os.Stderr)
		stop()
		os.Exit(code)
	}
}

// exitCode prints err to errW unless it was already shown, and returns the
// process exit code for it.
func exitCode(err error, errW io.Writer) int {
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		fmt.Fprintln(errW, exitErr.Message)
		return exitErr.Code
	}
	var runErr *app.RunError
	if errors.As(err, &runErr) && runErr.Reported {
		return 1
	}
	fmt.Fprintln(errW, err)
	return 1
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW, errW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(ctx, args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// Instantiate the concrete HCL loader to pass to the app.
	loader := hcl.NewLoader()
	gridtaskApp, err := app.NewApp(outW, errW, appConfig, loader)
	if err != nil {
		return err
	}

	if appConfig.List {
		return gridtaskApp.List(outW)
	}
	return gridtaskApp.Run(ctx)
}
