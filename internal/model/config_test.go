package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, defaultAppConfig(), cfg)
	assert.Equal(t, "ClassIFY.db", cfg.Database.Path)
	assert.True(t, cfg.Artifacts.Enabled)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	t.Chdir(t.TempDir())

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database:
  path: /tmp/school.db
artifacts:
  enabled: false
log:
  level: debug
  format: console
`), 0o644))
	t.Setenv("CLASSIFY_EXPORT_DIR", "/tmp/reports")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/school.db", cfg.Database.Path)
	assert.False(t, cfg.Artifacts.Enabled)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "/tmp/reports", cfg.Export.Dir)
	assert.Equal(t, ".", cfg.Artifacts.Dir)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CLASSIFY_DATABASE_PATH=from-dotenv.db\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("CLASSIFY_DATABASE_PATH") })

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv.db", cfg.Database.Path)
}

func TestLoadConfig_RejectsBadFormat(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CLASSIFY_LOG_FORMAT", "xml")

	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	t.Chdir(t.TempDir())

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := defaultAppConfig()
	cfg.Database.Path = "other.db"
	cfg.Export.Dir = "exports"

	require.NoError(t, SaveConfig(path, cfg))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
