package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vk/gridtask/internal/handlers"
	"github.com/vk/gridtask/internal/hcl"
	"github.com/vk/gridtask/internal/testutil"
)

// SetupAppTest writes taskfile into a temporary directory and builds an app
// from it, with console output and debug logs captured in separate buffers.
// cfg.Paths is overwritten; set GRIDTASK_TEST_LOGS=true to dump the logs.
func SetupAppTest(t *testing.T, taskfile string, cfg Config, modules ...handlers.Module) (*App, *testutil.SafeBuffer, *testutil.SafeBuffer) {
	t.Helper()

	path := filepath.Join(t.TempDir(), DefaultTaskfile)
	if err := os.WriteFile(path, []byte(taskfile), 0600); err != nil {
		t.Fatalf("failed to write taskfile: %v", err)
	}

	cfg.Paths = []string{path}
	cfg.LogLevel = "debug"
	cfg.NoColor = true
	appConfig, err := NewConfig(cfg)
	if err != nil {
		t.Fatalf("invalid test config: %v", err)
	}

	out, logs := &testutil.SafeBuffer{}, &testutil.SafeBuffer{}
	testApp, err := NewApp(out, logs, appConfig, hcl.NewLoader(), modules...)
	if err != nil {
		t.Fatalf("failed to create app: %v", err)
	}

	t.Cleanup(func() {
		if os.Getenv("GRIDTASK_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})

	return testApp, out, logs
}
