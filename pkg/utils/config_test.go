package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "illogical.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "circuit", cfg.Name)
	assert.Equal(t, 4096, cfg.MaxDepth)
	assert.Equal(t, 16, cfg.TruthTableLimit)
	assert.Equal(t, InfoLevel, cfg.Level())
	assert.Empty(t, cfg.MetricsAddr)
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
name: adder
log_level: debug
max_depth: 128
metrics_addr: ":9102"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "adder", cfg.Name)
	assert.Equal(t, DebugLevel, cfg.Level())
	assert.Equal(t, 128, cfg.MaxDepth)
	assert.Equal(t, ":9102", cfg.MetricsAddr)
	// Unset fields keep their defaults
	assert.Equal(t, 16, cfg.TruthTableLimit)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad yaml", "name: [unterminated", "failed to parse config"},
		{"bad level", "log_level: loud", "unknown log level"},
		{"bad depth", "max_depth: 0", "max_depth must be positive"},
		{"bad limit", "truth_table_limit: 40", "truth_table_limit must be between 1 and 24"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"error":   ErrorLevel,
		"WARN":    WarningLevel,
		"warning": WarningLevel,
		"":        InfoLevel,
		" debug ": DebugLevel,
		"trace":   TraceLevel,
	}
	for name, want := range tests {
		got, err := ParseLogLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseLogLevel("verbose")
	assert.Error(t, err)
}
