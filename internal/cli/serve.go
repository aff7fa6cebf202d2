package cli

import (
	"github.com/spf13/cobra"

	"github.com/bson/filtergen/pkg/server"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr, envFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the design pipeline over HTTP",
		Long: `Serve the design pipeline over HTTP.

Configuration is read from the environment and an optional .env file:
  FILTERGEN_ADDR        listen address (default :8080)
  FILTERGEN_REDIS_URL   redis URL for the shared design cache
  FILTERGEN_CACHE_TTL   cache entry lifetime, e.g. 24h`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var files []string
			if envFile != "" {
				files = append(files, envFile)
			}
			cfg, err := server.LoadConfig(files...)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}

			logger := loggerFromContext(cmd.Context())
			srv, err := server.NewFromConfig(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer srv.Close()

			if cfg.RedisURL != "" {
				logger.Info("using redis cache", "ttl", cfg.CacheTTL)
			}
			return srv.ListenAndServe(cmd.Context(), cfg.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides FILTERGEN_ADDR)")
	cmd.Flags().StringVar(&envFile, "env", "", "environment file (default .env)")
	return cmd
}
