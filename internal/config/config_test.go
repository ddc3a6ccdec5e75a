package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "littlewins.db", cfg.DBPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.Empty(t, cfg.CatalogPath)
	assert.Equal(t, 10*time.Second, cfg.WriteTimeout)
	assert.Empty(t, cfg.AllowedOrigins)
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	yml := `
port: "9090"
db:
  path: /tmp/lw.db
log:
  level: debug
auth:
  token_ttl: 2h
catalog:
  path: configs/activities.yml
ws:
  allowed_origins:
    - http://localhost:3000
    - https://littlewins.app
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(yml), 0o600))
	t.Setenv("LITTLEWINS_AUTH_SIGNING_KEY", "from-env")
	t.Setenv("LITTLEWINS_PORT", "7070")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "/tmp/lw.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "from-env", cfg.SigningKey)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "configs/activities.yml", cfg.CatalogPath)
	assert.Equal(t, []string{"http://localhost:3000", "https://littlewins.app"}, cfg.AllowedOrigins)
}

func TestLoad_AllowedOriginsFromEnv(t *testing.T) {
	t.Setenv("LITTLEWINS_WS_ALLOWED_ORIGINS", "http://a.test http://b.test")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
}

func TestLoad_RejectsBadTTL(t *testing.T) {
	t.Setenv("LITTLEWINS_AUTH_TOKEN_TTL", "-1h")

	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token_ttl")
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte("port: [unclosed"), 0o600))

	_, err := Load(dir)
	require.Error(t, err)
}
