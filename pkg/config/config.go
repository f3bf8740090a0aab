// Package config provides configuration management for the pindex server.
// Settings come from a YAML file with sensible defaults, overridable
// through PINDEX_* environment variables and command-line flags.
package config

import (
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/glorpus-work/pindex/pkg/auth"
	"github.com/glorpus-work/pindex/pkg/errutils"
)

// envPrefix is the prefix for environment variable overrides
// (PINDEX_SERVER_PORT, PINDEX_OVERWRITE, ...).
const envPrefix = "pindex"

// Config represents the application configuration.
type Config struct {
	// Server holds the HTTP listener settings.
	Server ServerConfig `yaml:"server"`

	// Roots are the package directories to serve. Uploads land in the
	// first one.
	Roots []string `yaml:"roots"`

	// Recursive controls whether subdirectories of the roots are scanned.
	Recursive bool `yaml:"recursive"`

	// Overwrite permits uploads to replace an existing file.
	Overwrite bool `yaml:"overwrite"`

	// FallbackURL is where unknown project pages redirect to.
	FallbackURL string `yaml:"fallback_url" envconfig:"fallback_url"`

	// DisableFallback turns unknown-project redirects into 404s.
	DisableFallback bool `yaml:"disable_fallback" envconfig:"disable_fallback"`

	// HashAlgo selects the download-link digest (md5, sha1, sha256,
	// sha512); empty disables hashing.
	HashAlgo string `yaml:"hash_algo" envconfig:"hash_algo"`

	// CacheTTL bounds catalog staleness. Zero rescans on every query.
	CacheTTL time.Duration `yaml:"cache_ttl" envconfig:"cache_ttl"`

	// Authenticate lists the actions that require credentials; any of
	// update, download, list.
	Authenticate []string `yaml:"authenticate"`

	// PasswordFile is an htpasswd-style file of user:bcrypt-hash lines.
	// Empty means every credential is accepted.
	PasswordFile string `yaml:"password_file" envconfig:"password_file"`

	// HooksDir holds optional Tengo event scripts.
	HooksDir string `yaml:"hooks_dir" envconfig:"hooks_dir"`

	// WelcomeMsg overrides the front page text.
	WelcomeMsg string `yaml:"welcome_msg" envconfig:"welcome_msg"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" envconfig:"log_level"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// CacheControl, when positive, sets "Cache-Control: public, max-age=N"
	// on package downloads.
	CacheControl int `yaml:"cache_control" envconfig:"cache_control"`
}

// Default configuration values.
const (
	DefaultHost        = "0.0.0.0"
	DefaultPort        = 8080
	DefaultFallbackURL = "https://pypi.org/simple/"
	DefaultHashAlgo    = "sha256"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
		Recursive:    true,
		FallbackURL:  DefaultFallbackURL,
		HashAlgo:     DefaultHashAlgo,
		Authenticate: []string{string(auth.ActionUpdate)},
		LogLevel:     "info",
	}
}

// LoadConfig loads configuration from a file, falling back to defaults
// when the file does not exist, and applies environment overrides.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errutils.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errutils.Wrap(err, "invalid config file path")
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return finish(DefaultConfig())
		}
		return nil, errutils.Wrapf(err, "failed to open config file %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader and applies
// environment overrides.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errutils.Wrap(err, "failed to read config data")
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errutils.Wrap(errutils.ErrConfigParse, err.Error())
	}

	return finish(config)
}

func finish(config *Config) (*Config, error) {
	if err := envconfig.Process(envPrefix, config); err != nil {
		return nil, errutils.Wrap(errutils.ErrConfigParse, err.Error())
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig saves configuration to a file via a temporary sibling and an
// atomic rename.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return errutils.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return errutils.Wrap(err, "invalid config file path")
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return errutils.Wrap(err, "failed to create config directory")
	}

	tempPath := absPath + ".tmp"
	file, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return errutils.Wrap(err, "failed to create config file")
	}

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	if err := encoder.Encode(c); err != nil {
		_ = file.Close()
		_ = os.Remove(tempPath)
		return errutils.Wrap(errutils.ErrConfigEncode, err.Error())
	}
	_ = encoder.Close()
	_ = file.Close()

	if err := os.Rename(tempPath, absPath); err != nil {
		_ = os.Remove(tempPath)
		return errutils.Wrap(err, "failed to rename temporary config file")
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errutils.ErrConfigValidation
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errutils.Wrapf(errutils.ErrConfigValidation, "invalid port %d", c.Server.Port)
	}
	switch c.HashAlgo {
	case "", "md5", "sha1", "sha256", "sha512":
	default:
		return errutils.Wrapf(errutils.ErrConfigValidation, "unsupported hash algorithm %q", c.HashAlgo)
	}
	if c.CacheTTL < 0 {
		return errutils.Wrapf(errutils.ErrConfigValidation, "cache_ttl cannot be negative")
	}
	for _, action := range c.Authenticate {
		if !slices.Contains(auth.ValidActions, auth.Action(action)) {
			return errutils.Wrapf(errutils.ErrConfigValidation, "unknown action %q in authenticate", action)
		}
	}
	return nil
}

// RequiresAuth reports whether the given action is in the authenticate
// list.
func (c *Config) RequiresAuth(action auth.Action) bool {
	return slices.Contains(c.Authenticate, string(action))
}
