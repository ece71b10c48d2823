package main

import (
	"fmt"

	"commitkit/internal/config"
	"commitkit/internal/guidelines"
	"commitkit/internal/logging"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

// newPreviewCmd returns the `commitkit preview` command.
func newPreviewCmd(cfg *config.Config, logger *logging.AppLogger) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "preview [identifier]",
		Short: "Render a guideline document in the terminal",
		Long: "Renders the named guideline document with terminal markdown formatting. " +
			"Without an identifier the bundled Conventional Commits guide is shown. " +
			"Use 'commitkit preview list' to see available documents.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := guidelines.NewStore(cfg.GuidelineDir, logger)

			identifier := guidelines.DefaultIdentifier
			if len(args) == 1 {
				identifier = args[0]
			}

			doc, err := store.Load(identifier)
			if err != nil {
				return err
			}

			if plain {
				fmt.Fprintln(cmd.OutOrStdout(), doc.Content)
				return nil
			}

			renderer, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(100),
			)
			if err != nil {
				return fmt.Errorf("creating markdown renderer: %w", err)
			}

			rendered, err := renderer.Render(doc.Content)
			if err != nil {
				return fmt.Errorf("rendering guideline: %w", err)
			}

			fmt.Fprint(cmd.OutOrStdout(), rendered)
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Print the raw markdown without terminal formatting")

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List available guideline documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := guidelines.NewStore(cfg.GuidelineDir, logger)
			for _, id := range store.Identifiers() {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	})

	return cmd
}
