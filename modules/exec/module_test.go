package exec

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/gridtask/internal/handlers"
)

func TestOnRunExec(t *testing.T) {
	dir := t.TempDir()
	resolvedDir, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)

	testCases := []struct {
		name       string
		input      Input
		wantCode   any
		wantErr    string
		wantStdout string
		wantStderr string
	}{
		{
			name:       "success",
			input:      Input{Command: "echo hello world"},
			wantCode:   0,
			wantStdout: "hello world\n",
		},
		{
			name:       "quoted arguments",
			input:      Input{Command: `sh -c 'echo "$0-$1"' a b`},
			wantCode:   0,
			wantStdout: "a-b\n",
		},
		{
			name:       "env is added",
			input:      Input{Command: `sh -c 'echo $GREETING'`, Env: map[string]string{"GREETING": "hi"}},
			wantCode:   0,
			wantStdout: "hi\n",
		},
		{
			name:       "dir",
			input:      Input{Command: "pwd", Dir: resolvedDir},
			wantCode:   0,
			wantStdout: resolvedDir + "\n",
		},
		{
			name:       "non-zero exit",
			input:      Input{Command: `sh -c 'echo oops >&2; exit 3'`},
			wantCode:   3,
			wantErr:    `command "sh" exited with code 3`,
			wantStderr: "oops\n",
		},
		{
			name:    "empty command",
			input:   Input{Command: "   "},
			wantErr: "command is empty",
		},
		{
			name:    "unterminated quote",
			input:   Input{Command: `echo "nope`},
			wantErr: "failed to parse command",
		},
		{
			name:    "missing binary",
			input:   Input{Command: "gridtask-definitely-not-a-binary"},
			wantErr: "failed to run",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			m := &Module{Stdout: &stdout, Stderr: &stderr}

			code, err := m.OnRunExec(context.Background(), &tc.input)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.ErrorContains(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.wantCode, code)
			assert.Equal(t, tc.wantStdout, stdout.String())
			assert.Equal(t, tc.wantStderr, stderr.String())
		})
	}
}

func TestOnRunExec_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := &Module{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	_, err := m.OnRunExec(ctx, &Input{Command: "sleep 5"})
	require.Error(t, err)
}

func TestRegister(t *testing.T) {
	h := handlers.New()
	(&Module{}).Register(h)

	handler, ok := h.Get(Kind)
	require.True(t, ok)
	assert.IsType(t, &Input{}, handler.Input())
}
