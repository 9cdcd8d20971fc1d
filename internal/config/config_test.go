package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, Duration(time.Hour), cfg.TokenTTL)
	assert.True(t, cfg.IsDevSecret())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.yaml")
	body := `addr: ":9090"
jwt_secret: topsecret
token_ttl: 30m
allowed_origins:
  - https://shop.example.com
audit_max: 50
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "topsecret", cfg.JWTSecret)
	assert.Equal(t, Duration(30*time.Minute), cfg.TokenTTL)
	assert.Equal(t, []string{"https://shop.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, 50, cfg.AuditMax)
	assert.False(t, cfg.IsDevSecret())
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":9090\"\n"), 0o600))

	t.Setenv("STOREFRONT_ADDR", ":7070")
	t.Setenv("STOREFRONT_JWT_SECRET", "from-env")
	t.Setenv("STOREFRONT_TOKEN_TTL", "15m")
	t.Setenv("STOREFRONT_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Addr)
	assert.Equal(t, "from-env", cfg.JWTSecret)
	assert.Equal(t, Duration(15*time.Minute), cfg.TokenTTL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
}

func TestBadYAMLRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: [unclosed"), 0o600))

	_, err := LoadFromPath(path)
	assert.Error(t, err)
}
