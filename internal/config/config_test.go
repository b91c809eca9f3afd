package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("Open Accounting")
	cfg.Store.Backend = BackendSQLite
	cfg.Dashboard.QueuedAfterDays = 14

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestDefaults(t *testing.T) {
	cfg := Default("My Org")

	assert.Equal(t, "My Org", cfg.Organisation.Name)
	assert.Equal(t, 10, cfg.Dashboard.QueuedAfterDays)
	assert.Equal(t, 25, cfg.Dashboard.PageSize)
	assert.Equal(t, "GBP", cfg.Dashboard.Currency)
	assert.Equal(t, BackendMemory, cfg.Store.Backend)
	assert.Equal(t, "data/oadmin.db", cfg.Store.SQLitePath)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "import", cfg.Enrich.ImportDir)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFillsMissingWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("organisation:\n  name: Partial\ndashboard:\n  page_size: 50\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Partial", cfg.Organisation.Name)
	assert.Equal(t, 50, cfg.Dashboard.PageSize)
	assert.Equal(t, 10, cfg.Dashboard.QueuedAfterDays)
	assert.Equal(t, BackendMemory, cfg.Store.Backend)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("dashboard: [oops"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default("Test Org")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Test Org")
	assert.Contains(t, contents, "queued_after_days: 10")
	assert.Contains(t, contents, "backend: memory")
	assert.Contains(t, contents, "sqlite_path: data/oadmin.db")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvStore, BackendSQLite)
	t.Setenv(EnvSQLitePath, "/tmp/x.db")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvPageSize, "10")

	cfg := Default("")
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, "/tmp/x.db", cfg.Store.SQLitePath)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 10, cfg.Dashboard.PageSize)
}

func TestApplyEnvBadPageSize(t *testing.T) {
	t.Setenv(EnvPageSize, "lots")
	err := Default("").ApplyEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvPageSize)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, LoadEnvFile(dir), "missing .env is fine")

	t.Setenv(EnvLogLevel, "")
	os.Unsetenv(EnvLogLevel)
	require.NoError(t, os.WriteFile(filepath.Join(dir, EnvFile), []byte(EnvLogLevel+"=warn\n"), 0o644))
	require.NoError(t, LoadEnvFile(dir))
	assert.Equal(t, "warn", os.Getenv(EnvLogLevel))
}

func TestValidateCollectsProblems(t *testing.T) {
	cfg := Default("")
	cfg.Dashboard.QueuedAfterDays = -1
	cfg.Dashboard.PageSize = 0
	cfg.Dashboard.Currency = "XYZ"
	cfg.Store.Backend = "postgres"
	cfg.Log.Level = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "queued_after_days")
	assert.Contains(t, msg, "page_size")
	assert.Contains(t, msg, "currency")
	assert.Contains(t, msg, "store backend")
	assert.Contains(t, msg, "log level")
}

func TestValidateSQLitePath(t *testing.T) {
	cfg := Default("")
	cfg.Store.Backend = BackendSQLite
	cfg.Store.SQLitePath = " "
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite_path")
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t, filepath.Join("/ws", "data/oadmin.db"), ResolvePath("/ws", "data/oadmin.db"))
	assert.Equal(t, "/abs/x.db", ResolvePath("/ws", "/abs/x.db"))
}
