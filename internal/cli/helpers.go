package cli

import (
	"github.com/glorpus-work/pindex/internal/logger"
	"github.com/glorpus-work/pindex/pkg/auth"
	"github.com/glorpus-work/pindex/pkg/backend"
	"github.com/glorpus-work/pindex/pkg/config"
	"github.com/glorpus-work/pindex/pkg/errutils"
	"github.com/glorpus-work/pindex/pkg/hooks"
)

// These variables will be set by the main package
var (
	ConfigPath *string
	Verbose    *bool
)

// loadConfig reads the config file named on the command line (a missing
// file yields defaults), applies environment overrides and initializes
// logging.
func loadConfig() (*config.Config, error) {
	path := "pindex.yaml"
	if ConfigPath != nil && *ConfigPath != "" {
		path = *ConfigPath
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, errutils.Wrap(err, "failed to load config")
	}

	if Verbose != nil && *Verbose {
		cfg.LogLevel = "debug"
	}
	logger.InitLogger(cfg.LogLevel)
	return cfg, nil
}

// buildBackend creates the filesystem catalog described by the config.
func buildBackend(cfg *config.Config) (backend.Backend, error) {
	be, err := backend.NewFileBackend(backend.Options{
		Roots:     cfg.Roots,
		Recursive: cfg.Recursive,
		Overwrite: cfg.Overwrite,
		HashAlgo:  cfg.HashAlgo,
		CacheTTL:  cfg.CacheTTL,
	})
	if err != nil {
		return nil, errutils.Wrap(err, "failed to open package roots")
	}
	return be, nil
}

// buildAuthenticator creates the credential checker. Without a password
// file every credential is accepted, matching the config's documented
// behavior.
func buildAuthenticator(cfg *config.Config) (auth.Authenticator, error) {
	if cfg.PasswordFile == "" {
		return auth.AllowAll{}, nil
	}
	auther, err := auth.NewHtpasswdAuthenticator(cfg.PasswordFile)
	if err != nil {
		return nil, errutils.Wrap(err, "failed to load password file")
	}
	return auther, nil
}

// buildHooks creates the hook executor and loads any event scripts from
// the configured directory.
func buildHooks(cfg *config.Config) (hooks.HookManager, error) {
	executor := hooks.NewTengoExecutor()
	if cfg.HooksDir == "" {
		return executor, nil
	}
	if err := hooks.LoadHooksFromDir(executor, cfg.HooksDir); err != nil {
		return nil, errutils.Wrap(err, "failed to load hook scripts")
	}
	return executor, nil
}
