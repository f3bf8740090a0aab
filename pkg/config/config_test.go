package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/pindex/pkg/auth"
	"github.com/glorpus-work/pindex/pkg/errutils"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultHost, cfg.Server.Host)
	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, DefaultFallbackURL, cfg.FallbackURL)
	assert.Equal(t, DefaultHashAlgo, cfg.HashAlgo)
	assert.True(t, cfg.Recursive)
	assert.False(t, cfg.Overwrite)
	assert.Equal(t, []string{"update"}, cfg.Authenticate)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	configContent := `server:
  host: 127.0.0.1
  port: 9000
  cache_control: 3600
roots:
  - /srv/packages
  - /srv/more-packages
overwrite: true
hash_algo: md5
cache_ttl: 5s
authenticate: [update, download]
log_level: debug`

	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o600))

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 3600, cfg.Server.CacheControl)
	assert.Equal(t, []string{"/srv/packages", "/srv/more-packages"}, cfg.Roots)
	assert.True(t, cfg.Overwrite)
	assert.Equal(t, "md5", cfg.HashAlgo)
	assert.Equal(t, 5*time.Second, cfg.CacheTTL)
	assert.Equal(t, []string{"update", "download"}, cfg.Authenticate)
	assert.Equal(t, "debug", cfg.LogLevel)

	// Unset keys keep their defaults.
	assert.Equal(t, DefaultFallbackURL, cfg.FallbackURL)
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.Server.Port)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.ErrorIs(t, err, errutils.ErrEmptyConfigPath)
}

func TestLoadConfigFromReaderParseError(t *testing.T) {
	_, err := LoadConfigFromReader(strings.NewReader("{not yaml"))
	assert.ErrorIs(t, err, errutils.ErrConfigParse)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PINDEX_HASH_ALGO", "sha512")
	t.Setenv("PINDEX_DISABLE_FALLBACK", "true")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "sha512", cfg.HashAlgo)
	assert.True(t, cfg.DisableFallback)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Roots = []string{"/srv/packages"}
	cfg.Server.Port = 9999

	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	require.NoError(t, cfg.SaveConfig(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Roots, loaded.Roots)
	assert.Equal(t, 9999, loaded.Server.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "empty hash algo disables hashing", mutate: func(c *Config) { c.HashAlgo = "" }},
		{name: "port zero", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: true},
		{name: "port too large", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: true},
		{name: "bad hash algo", mutate: func(c *Config) { c.HashAlgo = "crc32" }, wantErr: true},
		{name: "negative ttl", mutate: func(c *Config) { c.CacheTTL = -time.Second }, wantErr: true},
		{name: "unknown action", mutate: func(c *Config) { c.Authenticate = []string{"fly"} }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, errutils.ErrConfigValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRequiresAuth(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.RequiresAuth(auth.ActionUpdate))
	assert.False(t, cfg.RequiresAuth(auth.ActionDownload))
	assert.False(t, cfg.RequiresAuth(auth.ActionList))

	cfg.Authenticate = nil
	assert.False(t, cfg.RequiresAuth(auth.ActionUpdate))
}
