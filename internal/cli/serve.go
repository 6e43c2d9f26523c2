package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/ucycle/internal/api"
	"github.com/matzehuels/ucycle/pkg/observability"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve cycles over HTTP",
		Long: `Run the HTTP API. Cycles are cached in the configured backend; a shared
Redis or Mongo cache lets several instances serve the same cycles.

  GET  /v1/cycles/{n}
  GET  /v1/cycles/{n}/symbols/{i}
  POST /v1/verify
  POST /v1/rank
  POST /v1/unrank
  GET  /healthz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			observability.SetHTTPHooks(observability.NewLogHooks(c.Logger))
			srv := api.New(runner, c.Logger, c.Config.MaxOrder)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}
