package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/metro/internal/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve metro rendering over HTTP",
		Long: `Run an HTTP server that renders posted scripts.

  POST /render?format=text|json|dot|svg&input=json|yaml|toml
  GET  /healthz

The server uses the configured cache backend; point several instances at the
same Redis to share rendered artifacts. It stops on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.config.Serve.Addr
			}
			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			return server.New(runner, c.Logger).ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, "+DefaultServeAddr+")")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
