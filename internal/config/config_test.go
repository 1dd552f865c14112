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
		t.Setenv("GEMINI_API_KEY", "")
		cfg, err := Load(filepath.Join(t.TempDir(), "config.json"))
		require.NoError(t, err)
		assert.Empty(t, cfg.APIKey)
		assert.Equal(t, DefaultModel, cfg.Model)
		assert.NotEmpty(t, cfg.DataDir)
	})

	t.Run("env key overrides the stored key", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"api_key":"stored","model":"custom-model"}`), 0o600))
		t.Setenv("GEMINI_API_KEY", "from-env")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.APIKey)
		assert.Equal(t, "custom-model", cfg.Model)
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	in := &Config{APIKey: "k", Model: "m", DataDir: "/tmp/data", Verbose: true}
	require.NoError(t, in.Save(path))

	out, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, in.APIKey, out.APIKey)
	assert.Equal(t, in.Model, out.Model)
	assert.Equal(t, in.DataDir, out.DataDir)
	assert.True(t, out.Verbose)
}

func TestDerivedPaths(t *testing.T) {
	cfg := &Config{DataDir: "/home/u/.trendremix"}
	assert.Equal(t, filepath.Join("/home/u/.trendremix", "trendremix.db"), cfg.DatabasePath())
	assert.Equal(t, filepath.Join("/home/u/.trendremix", "media"), cfg.MediaDir())
}
