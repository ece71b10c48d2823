// Package main is the entry point for the commitkit CLI.
//
// commitkit is an MCP server that helps AI coding assistants write and
// validate conventional commit messages. The CLI wraps three commands:
//
//   - serve: run the MCP server (stdio by default, HTTP with --http)
//   - validate: check one commit message from the shell
//   - preview: render a guideline document in the terminal
//
// Startup follows the same sequence for every command: initialize logging,
// load configuration (defaults when no config file exists), then run.
package main

import (
	"os"

	"commitkit/internal/config"
	"commitkit/internal/logging"

	"github.com/spf13/cobra"
)

func main() {
	appLogger := logging.NewAppLogger()

	cfg, err := config.Load()
	if err != nil {
		appLogger.Error("Error loading config", "error", err)
		os.Exit(1)
	}

	root := newRootCmd(cfg, appLogger)
	if err := root.Execute(); err != nil {
		appLogger.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config, logger *logging.AppLogger) *cobra.Command {
	root := &cobra.Command{
		Use:           "commitkit",
		Short:         "Conventional commit assistant for MCP clients",
		Long:          "commitkit exposes staged-diff inspection and commit-message validation as MCP tools for AI coding assistants.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd(cfg, logger))
	root.AddCommand(newValidateCmd(cfg, logger))
	root.AddCommand(newPreviewCmd(cfg, logger))

	return root
}
