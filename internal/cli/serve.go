package cli

import (
	"github.com/spf13/cobra"

	"github.com/mlorenz/scenetree/internal/server"
	"github.com/mlorenz/scenetree/pkg/store"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the scenetree HTTP API.

The API exposes parsing (POST /v1/parse), dry-run building (POST /v1/build)
and, when a document store is configured, the /v1/documents routes. The
server shuts down gracefully on SIGINT/SIGTERM.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var st *store.Store
			if c.Config.Store.MongoURI != "" {
				var err error
				if st, err = c.openStore(ctx); err != nil {
					return err
				}
				defer st.Close(ctx)
				c.Logger.Info("document store connected", "database", c.Config.Store.Database)
			}

			if addr == "" {
				addr = c.Config.Server.Addr
			}
			srv := server.New(server.Options{
				Build:  c.Config.Build,
				Store:  st,
				Logger: c.Logger,
			})
			return srv.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}
