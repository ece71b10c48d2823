package main

import (
	"commitkit/internal/config"
	"commitkit/internal/logging"
	"commitkit/internal/mcp"

	"github.com/spf13/cobra"
)

// newServeCmd returns the `commitkit serve` command.
func newServeCmd(cfg *config.Config, logger *logging.AppLogger) *cobra.Command {
	var httpAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server",
		Long: "Serves the generate_conventional_commit and validate_commit_message tools over " +
			"stdio (the usual subprocess integration) or, with --http, over a streamable HTTP listener.",
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := mcp.NewServer(cfg, logger)
			if httpAddr != "" {
				return srv.StartHTTP(cmd.Context(), httpAddr)
			}
			return srv.Start(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&httpAddr, "http", "", "Serve over HTTP on this address instead of stdio (e.g. :8391)")

	return cmd
}
