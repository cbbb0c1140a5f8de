package print

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnRunPrint(t *testing.T) {
	testCases := []struct {
		name  string
		input Input
		want  string
	}{
		{
			name:  "empty",
			input: Input{},
			want:  "",
		},
		{
			name:  "message only",
			input: Input{Message: "Building..."},
			want:  "Building...\n",
		},
		{
			name: "values are sorted",
			input: Input{
				Message: "Config:",
				Values:  map[string]string{"stage": "ci", "out": "dist"},
			},
			want: "Config:\n      out = \"dist\"\n      stage = \"ci\"\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			m := &Module{Out: &buf}

			out, err := m.OnRunPrint(context.Background(), &tc.input)
			require.NoError(t, err)
			assert.Nil(t, out)
			assert.Equal(t, tc.want, buf.String())
		})
	}
}
