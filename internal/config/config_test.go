package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig("/data/eln")

	assert.Equal(t, "/data/eln/eln.db", cfg.Database.File)
	assert.Equal(t, "/data/eln/attachments", cfg.Attachments.Dir)
	assert.Equal(t, "/data/eln/backups", cfg.Backup.Dir)
	assert.Equal(t, "/data/eln/exports", cfg.Export.Dir)
}

func TestConfig_Validate(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		cfg := NewConfig(t.TempDir())
		cfg.Log.Dir = ""
		cfg.Backup.Vault = ""
		cfg.Encryption.Type = ""

		require.NoError(t, cfg.Validate())
		assert.Equal(t, filepath.Dir(cfg.Database.File), cfg.Log.Dir)
		assert.Equal(t, "filesystem", cfg.Backup.Vault)
		assert.Equal(t, "age", cfg.Encryption.Type)
	})

	t.Run("collects missing required keys", func(t *testing.T) {
		cfg := &Config{}

		err := cfg.Validate()
		require.Error(t, err)
		for _, key := range []string{"database.file", "attachments.dir", "backup.dir", "export.dir"} {
			assert.Contains(t, err.Error(), key)
		}
	})
}

func TestReadFromFile(t *testing.T) {
	t.Run("round trips through Init", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")
		cfg := NewConfig(dir)

		require.NoError(t, Init(path, cfg))

		got, err := ReadFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, cfg.Database.File, got.Database.File)
		assert.Equal(t, cfg.Attachments.Dir, got.Attachments.Dir)
		assert.Equal(t, cfg.Backup.Dir, got.Backup.Dir)
	})

	t.Run("Init refuses to overwrite", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")
		cfg := NewConfig(dir)

		require.NoError(t, Init(path, cfg))
		assert.Error(t, Init(path, cfg))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadFromFile("/nonexistent/config.toml")
		assert.Error(t, err)
	})

	t.Run("invalid config is rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("[database]\n"), 0644))

		_, err := ReadFromFile(path)
		assert.Error(t, err)
	})
}

func TestEnsureDirectories(t *testing.T) {
	cfg := NewConfig(filepath.Join(t.TempDir(), "eln"))

	require.NoError(t, cfg.EnsureDirectories())

	for _, dir := range []string{cfg.Attachments.Dir, cfg.Backup.Dir, cfg.Export.Dir, cfg.Log.Dir} {
		info, err := os.Stat(dir)
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir(), dir)
	}
}
