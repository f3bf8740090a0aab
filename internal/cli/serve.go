package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/pindex/internal/logger"
	"github.com/glorpus-work/pindex/internal/server"
	"github.com/glorpus-work/pindex/pkg/errutils"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	// Command line flags; zero values mean "keep the config file setting".
	var (
		host            string
		port            int
		overwrite       bool
		fallbackURL     string
		disableFallback bool
		passwordFile    string
		authenticate    []string
		hashAlgo        string
		cacheTTL        time.Duration
		hooksDir        string
		nonRecursive    bool
	)

	cmd := &cobra.Command{
		Use:   "serve [ROOT...]",
		Short: "Serve a package index over HTTP",
		Long: `Start the index server over one or more package directories.
Directories given as arguments override the roots from the config file;
uploads are stored in the first one.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if len(args) > 0 {
				cfg.Roots = args
			}
			if cmd.Flags().Changed("interface") {
				cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if cmd.Flags().Changed("overwrite") {
				cfg.Overwrite = overwrite
			}
			if cmd.Flags().Changed("fallback-url") {
				cfg.FallbackURL = fallbackURL
			}
			if cmd.Flags().Changed("disable-fallback") {
				cfg.DisableFallback = disableFallback
			}
			if cmd.Flags().Changed("passwords") {
				cfg.PasswordFile = passwordFile
			}
			if cmd.Flags().Changed("auth") {
				cfg.Authenticate = authenticate
			}
			if cmd.Flags().Changed("hash-algo") {
				cfg.HashAlgo = hashAlgo
			}
			if cmd.Flags().Changed("cache-ttl") {
				cfg.CacheTTL = cacheTTL
			}
			if cmd.Flags().Changed("hooks-dir") {
				cfg.HooksDir = hooksDir
			}
			if nonRecursive {
				cfg.Recursive = false
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			be, err := buildBackend(cfg)
			if err != nil {
				return err
			}
			auther, err := buildAuthenticator(cfg)
			if err != nil {
				return err
			}
			hookMgr, err := buildHooks(cfg)
			if err != nil {
				return err
			}

			srv := server.New(cfg, be, auther, hookMgr)
			logger.Info("starting server", logger.Fields{
				"roots": cfg.Roots,
				"host":  cfg.Server.Host,
				"port":  cfg.Server.Port,
			})
			if err := srv.Run(cmd.Context()); err != nil {
				return errutils.Wrap(err, "server failed")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&host, "interface", "i", "0.0.0.0", "interface to listen on")
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "port to listen on")
	cmd.Flags().BoolVarP(&overwrite, "overwrite", "o", false, "allow uploads to replace existing files")
	cmd.Flags().StringVar(&fallbackURL, "fallback-url", "", "index to redirect to for unknown projects")
	cmd.Flags().BoolVar(&disableFallback, "disable-fallback", false, "answer 404 for unknown projects instead of redirecting")
	cmd.Flags().StringVarP(&passwordFile, "passwords", "P", "", "htpasswd file with bcrypt password hashes")
	cmd.Flags().StringSliceVarP(&authenticate, "auth", "a", nil, "actions requiring credentials (update, download, list)")
	cmd.Flags().StringVar(&hashAlgo, "hash-algo", "", "digest for download links (md5, sha1, sha256, sha512)")
	cmd.Flags().DurationVar(&cacheTTL, "cache-ttl", 0, "how long the package listing may be served stale (0 rescans every request)")
	cmd.Flags().StringVar(&hooksDir, "hooks-dir", "", "directory with Tengo event scripts")
	cmd.Flags().BoolVar(&nonRecursive, "non-recursive", false, "do not scan subdirectories of the package roots")

	return cmd
}
