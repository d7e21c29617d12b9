// Package config_test contains the unit tests for the config package.
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := New()
	require.Equal(t, "info", cfg.LogLevel)
	require.True(t, cfg.Echo)
	require.Equal(t, "> ", cfg.Prompt)
	require.Empty(t, cfg.TranscriptPath)
	require.NoError(t, cfg.Validate())
}

func TestConfig_Load(t *testing.T) {
	tempDir := t.TempDir()

	// --- Test Case 1: Valid configuration file ---
	validToml := `
log_level = "debug"
echo = false
prompt = "=> "
transcript_path = "/tmp/session.log"
`
	validPath := filepath.Join(tempDir, "valid.toml")
	require.NoError(t, os.WriteFile(validPath, []byte(validToml), 0644))

	cfg := New()
	require.NoError(t, cfg.Load(validPath))
	require.Equal(t, "debug", cfg.LogLevel)
	require.False(t, cfg.Echo)
	require.Equal(t, "=> ", cfg.Prompt)
	require.Equal(t, "/tmp/session.log", cfg.TranscriptPath)

	// --- Test Case 2: Omitted keys keep their defaults ---
	partialPath := filepath.Join(tempDir, "partial.toml")
	require.NoError(t, os.WriteFile(partialPath, []byte(`metrics_path = "m.prom"`), 0644))

	cfg2 := New()
	require.NoError(t, cfg2.Load(partialPath))
	require.True(t, cfg2.Echo)
	require.Equal(t, "> ", cfg2.Prompt)
	require.Equal(t, "m.prom", cfg2.MetricsPath)

	// --- Test Case 3: File does not exist ---
	require.Error(t, New().Load(filepath.Join(tempDir, "nonexistent.toml")))

	// --- Test Case 4: Invalid TOML format ---
	invalidPath := filepath.Join(tempDir, "invalid.toml")
	require.NoError(t, os.WriteFile(invalidPath, []byte(`log_level = debug`), 0644))
	require.Error(t, New().Load(invalidPath))

	// --- Test Case 5: Unknown log level ---
	badLevelPath := filepath.Join(tempDir, "level.toml")
	require.NoError(t, os.WriteFile(badLevelPath, []byte(`log_level = "loud"`), 0644))
	err := New().Load(badLevelPath)
	require.Error(t, err)
	require.Contains(t, err.Error(), "log_level")
}
