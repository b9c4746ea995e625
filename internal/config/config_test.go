package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/mutker/questagent/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tempDir := t.TempDir()

	configContent := []byte(`
collector_url = "https://collector.example.com/api/v1/telemetry"
token = "s3cret"
license_url = "http://127.0.0.1:18000/license"
log_dir = "/tmp/questagent-logs"
journal = true
journal_db = "/tmp/questagent/journal.db"
adb_path = "/usr/bin/adb"
game_process = "com.example.coaster"
interval = 7200
log_level = "debug"
`)
	configPath := filepath.Join(tempDir, "questagent.toml")
	err := os.WriteFile(configPath, configContent, 0o600)
	require.NoError(t, err)

	t.Setenv("QUESTAGENT_CONFIG", configPath)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "https://collector.example.com/api/v1/telemetry", cfg.CollectorURL)
	assert.Equal(t, "s3cret", cfg.Token)
	assert.Equal(t, "http://127.0.0.1:18000/license", cfg.LicenseURL)
	assert.Equal(t, "/tmp/questagent-logs", cfg.LogDir)
	assert.True(t, cfg.Journal, "Expected Journal true")
	assert.Equal(t, "/tmp/questagent/journal.db", cfg.JournalDB)
	assert.Equal(t, "/usr/bin/adb", cfg.ADBPath)
	assert.Equal(t, "com.example.coaster", cfg.GameProcess)
	assert.Equal(t, 7200, cfg.Interval)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadDefaults(t *testing.T) {
	// Ensure no config file is used
	t.Setenv("QUESTAGENT_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := config.Load()
	require.NoError(t, err, "Failed to load config")

	assert.NotEmpty(t, cfg.CollectorURL, "Expected a default collector URL")
	assert.Equal(t, "questagent/1.0", cfg.UserAgent)
	assert.Equal(t, "/var/log/questagent", cfg.LogDir)
	assert.False(t, cfg.Journal, "Expected Journal disabled by default")
	assert.Equal(t, "adb", cfg.ADBPath)
	assert.Equal(t, 0, cfg.Interval, "Expected single-pass mode by default")
	assert.Equal(t, config.DefaultLogLevel, cfg.LogLevel)
}

func TestLoadConfigFileInvalidFormat(t *testing.T) {
	tempDir := t.TempDir()

	configContent := []byte(`
This is not a valid TOML file
`)
	configPath := filepath.Join(tempDir, "questagent.toml")
	err := os.WriteFile(configPath, configContent, 0o600)
	require.NoError(t, err)

	t.Setenv("QUESTAGENT_CONFIG", configPath)

	_, err = config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to read config file")
}

func TestInvalidLogLevel(t *testing.T) {
	tempDir := t.TempDir()

	configContent := []byte(`
log_level = "loud"
`)
	configPath := filepath.Join(tempDir, "questagent.toml")
	err := os.WriteFile(configPath, configContent, 0o600)
	require.NoError(t, err)

	t.Setenv("QUESTAGENT_CONFIG", configPath)

	_, err = config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid log level")
}

func TestNegativeInterval(t *testing.T) {
	tempDir := t.TempDir()

	configContent := []byte(`
interval = -5
`)
	configPath := filepath.Join(tempDir, "questagent.toml")
	err := os.WriteFile(configPath, configContent, 0o600)
	require.NoError(t, err)

	t.Setenv("QUESTAGENT_CONFIG", configPath)

	_, err = config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid interval value")
}

func TestLogLevelFlag(t *testing.T) {
	t.Setenv("QUESTAGENT_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd", "--log-level", "debug"}

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel, "Expected LogLevel to be set by flag")
}
