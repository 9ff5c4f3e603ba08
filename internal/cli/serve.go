package cli

import (
	"github.com/spf13/cobra"

	"github.com/BDNK1/stepkit/internal/server"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the built-in steps over HTTP",
		Long: `Serve the built-in steps over HTTP.

Endpoints:
  GET  /healthz
  GET  /metrics
  GET  /steps
  GET  /steps/:id
  GET  /steps/:id/inputs
  POST /steps/:id/form
  POST /steps/:id/validate
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := opts.cfg.Server
			if addr != "" {
				cfg.Addr = addr
			}

			srv := server.New(opts.registry,
				server.WithVariables(opts.cfg.Variables),
				server.WithLogger(opts.logger),
			)
			return srv.Run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
	return cmd
}
