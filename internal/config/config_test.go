package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "obstetric-intake", cfg.Questionnaire)
	assert.Equal(t, DefaultSchema, cfg.Schema)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 2*time.Second, cfg.SubmitDelay)
	assert.Equal(t, "json", cfg.Output)
	assert.Empty(t, cfg.Definition)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yml")
	content := "definition: ./forms\nsubmit_delay: 500ms\nlog_level: debug\ntheme_variant: dark\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("INTAKE_LOG_LEVEL", "warn")
	t.Setenv("INTAKE_OUTPUT", "pretty")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "./forms", cfg.Definition)
	assert.Equal(t, 500*time.Millisecond, cfg.SubmitDelay)
	assert.Equal(t, "warn", cfg.LogLevel, "env overrides file")
	assert.Equal(t, "pretty", cfg.Output)
	assert.Equal(t, "dark", cfg.ThemeVariant)
}

func TestLoad_ProjectFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectPath()), []byte("questionnaire: antenatal\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "antenatal", cfg.Questionnaire)
}

func TestLoad_RejectsNegativeDelay(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("INTAKE_SUBMIT_DELAY", "-1s")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestConfig_Logger(t *testing.T) {
	cfg := &Config{LogLevel: "debug"}
	logger, err := cfg.Logger()
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(-1))

	cfg.LogLevel = "loud"
	_, err = cfg.Logger()
	assert.Error(t, err)
}
