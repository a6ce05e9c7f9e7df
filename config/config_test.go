package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Common Stock", cfg.SpreadsheetName)
	assert.Equal(t, 0, cfg.CameraDevice)
	assert.Equal(t, 100, cfg.ScanIntervalMS)
	assert.Equal(t, "exports", cfg.ExportDir)
	assert.Equal(t, 465, cfg.SMTPPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "app.log", cfg.LogFile)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("spreadsheet_id: abc123\ncamera_device: 2\nlog_level: debug\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "labstock.yaml"), yaml, 0o644))
	chdir(t, dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "abc123", cfg.SpreadsheetID)
	assert.Equal(t, 2, cfg.CameraDevice)
	assert.Equal(t, "debug", cfg.LogLevel)
	// untouched keys keep their defaults
	assert.Equal(t, "Common Stock", cfg.SpreadsheetName)
}

func TestLoadEnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LABSTOCK_SPREADSHEET_ID", "env-sheet-id")
	t.Setenv("LABSTOCK_SMTP_HOST", "smtp.env.example")
	t.Setenv("LABSTOCK_NOTIFY_RECIPIENT", "manager@example.com")
	t.Setenv("LABSTOCK_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	// keys without a file value must still pick up the environment
	assert.Equal(t, "env-sheet-id", cfg.SpreadsheetID)
	assert.Equal(t, "smtp.env.example", cfg.SMTPHost)
	assert.Equal(t, "manager@example.com", cfg.NotifyRecipient)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadBadFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "labstock.yaml"), []byte("{not yaml"), 0o644))
	chdir(t, dir)

	_, err := Load()
	assert.Error(t, err)
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
