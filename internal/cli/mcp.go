package cli

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/todos/internal/mcpserver"
	"github.com/Makepad-fr/todos/internal/ui"
)

func newMCPCmd(app *App) *cobra.Command {
	var httpAddr string
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the todo list over the Model Context Protocol",
		Long: `Serve the todo list over the Model Context Protocol.

The list is loaded once at startup and lives in memory until the server stops.
Without --http the server speaks MCP over stdin/stdout.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := app.logger(cmd.ErrOrStderr())
			if err != nil {
				return usage(err)
			}
			svc := mcpserver.NewService(app.newList(), logger)
			if err := svc.Load(cmd.Context(), app.source(logger)); err != nil {
				// Serve an empty list rather than refusing to start.
				logger.Warn("serving an empty list", "err", err)
			}

			r := mcpserver.Runner{
				Service:   svc,
				Name:      "todos",
				Version:   Version,
				Logger:    logger,
				Transport: mcpserver.TransportStdio,
			}
			if httpAddr != "" {
				r.Transport = mcpserver.TransportHTTP
				r.HTTPListenAddr = httpAddr
				r.HTTPEndpointPath = "/mcp"
				// stdout is free only when MCP is not speaking over it.
				r.OnHTTPListening = func(addr net.Addr) {
					fmt.Fprintln(cmd.OutOrStdout(), ui.PanelLines([]string{
						"todos MCP " + Version,
						"http://" + addr.String() + r.HTTPEndpointPath,
						fmt.Sprintf("%d todos loaded", svc.Snapshot().Total),
					}))
				}
			}
			if err := r.Do(cmd.Context()); err != nil {
				return err
			}
			if r.Transport == mcpserver.TransportHTTP {
				ui.OK("mcp server stopped")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&httpAddr, "http", "", "Serve streamable HTTP on this address instead of stdio, e.g. 127.0.0.1:8080")
	return cmd
}
