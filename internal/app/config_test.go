package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	cfg, err := NewConfig(Config{})
	require.NoError(t, err)
	assert.Equal(t, []string{DefaultTaskfile}, cfg.Paths)
	assert.Equal(t, []string{DefaultTask}, cfg.Tasks)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)

	cfg, err = NewConfig(Config{LogLevel: "DEBUG", LogFormat: "JSON", Tasks: []string{"build"}})
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, []string{"build"}, cfg.Tasks)
}

func TestNewConfig_Invalid(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"log level", Config{LogLevel: "verbose"}, "invalid log-level"},
		{"log format", Config{LogFormat: "xml"}, "invalid log-format"},
		{"port", Config{HealthcheckPort: 70000}, "invalid healthcheck-port"},
		{"empty task name", Config{Tasks: []string{" "}}, "task names must not be empty"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewConfig(tc.cfg)
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}
