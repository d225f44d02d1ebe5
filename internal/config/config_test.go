package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_EnvOnly(t *testing.T) {
	t.Setenv("BACKEND_URL", "https://masjid.example.org/")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "/api", cfg.Backend.APIPrefix)
	assert.Equal(t, "https://masjid.example.org/api", cfg.APIBase())
}

func TestLoadFile_FallsBackToLegacyVariable(t *testing.T) {
	t.Setenv("BACKEND_URL", "")
	t.Setenv("REACT_APP_BACKEND_URL", "http://localhost:8001")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8001/api", cfg.APIBase())
}

func TestLoadFile_MissingBackend(t *testing.T) {
	t.Setenv("BACKEND_URL", "")
	t.Setenv("REACT_APP_BACKEND_URL", "")

	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, ErrMissingBackendURL)
}

func TestLoadFile_YAML(t *testing.T) {
	t.Setenv("BACKEND_URL", "")
	t.Setenv("REACT_APP_BACKEND_URL", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := []byte("server:\n  port: 9090\nbackend:\n  url: http://backend:8001\n  api_prefix: v1\nredis:\n  addr: redis:6379\n")
	require.NoError(t, os.WriteFile(path, yaml, 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, "http://backend:8001/v1", cfg.APIBase())
}

func TestValidate_RejectsRelativeURL(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.Backend.URL = "backend:8001"

	assert.Error(t, cfg.Validate())
}
