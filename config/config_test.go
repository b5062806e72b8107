package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultHasSaneValues(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 0.95, cfg.CorrelationThreshold)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.True(t, cfg.ZeroFillWriteGaps)
}

func TestLoadWithNoFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	restore := chdir(t, dir)
	defer restore()

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMergesFoundFile(t *testing.T) {
	dir := t.TempDir()
	restore := chdir(t, dir)
	defer restore()

	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "soundsegctl.yaml"),
		[]byte("correlation_threshold: 0.8\noutput_dir: /tmp/out\n"),
		0o644,
	))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0.8, cfg.CorrelationThreshold)
	assert.Equal(t, "/tmp/out", cfg.OutputDir)
	assert.True(t, cfg.ZeroFillWriteGaps, "fields absent from the file keep their default value, not the zero value")
}

func TestLoadRejectsUnparseableFile(t *testing.T) {
	dir := t.TempDir()
	restore := chdir(t, dir)
	defer restore()

	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "soundsegctl.yaml"),
		[]byte("not: valid: yaml: at: all:"),
		0o644,
	))

	_, err := Load()
	assert.Error(t, err, "a config file that exists but fails to parse must not be silently ignored")
}

// chdir switches the working directory for the duration of the test and
// returns a func to restore it; Load's search list includes the bare
// relative name "soundsegctl.yaml", resolved against the process cwd.
func chdir(t *testing.T, dir string) func() {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() {
		_ = os.Chdir(prev)
	}
}
