package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := Load(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, DefaultServerURL, cfg.ServerURL)
		assert.Empty(t, cfg.CacheDir)
	})

	t.Run("reads values from file", func(t *testing.T) {
		dir := t.TempDir()
		err := os.WriteFile(filepath.Join(dir, "config.yaml"),
			[]byte("server_url: https://pm.example.com/api\ncache_dir: /tmp/companysys-cache\n"), 0600)
		require.NoError(t, err)

		cfg, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, "https://pm.example.com/api", cfg.ServerURL)
		assert.Equal(t, "/tmp/companysys-cache", cfg.CacheDir)
	})

	t.Run("empty server_url falls back to default", func(t *testing.T) {
		dir := t.TempDir()
		err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("cache_dir: /x\n"), 0600)
		require.NoError(t, err)

		cfg, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, DefaultServerURL, cfg.ServerURL)
	})

	t.Run("returns error for invalid yaml", func(t *testing.T) {
		dir := t.TempDir()
		err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("\tnope"), 0600)
		require.NoError(t, err)

		_, err = Load(dir)
		assert.Error(t, err)
	})
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "companysys")

	err := Save(dir, &Config{ServerURL: "https://pm.example.com/api"})
	require.NoError(t, err)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "https://pm.example.com/api", cfg.ServerURL)
}
