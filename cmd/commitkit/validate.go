package main

import (
	"fmt"
	"strings"

	"commitkit/internal/config"
	"commitkit/internal/lint"
	"commitkit/internal/logging"
	"commitkit/internal/runner"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	validStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	invalidStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	ruleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// newValidateCmd returns the `commitkit validate` command.
func newValidateCmd(cfg *config.Config, logger *logging.AppLogger) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <message>",
		Short: "Validate a commit message against conventional-commit rules",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message := strings.Join(args, " ")

			lintRun := runner.NewExecRunner(cfg.LintTimeout(), logger)
			linter := lint.NewRunner(cfg.LinterCommand, lintRun, logger)

			verdict, err := linter.Validate(cmd.Context(), message)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if verdict.IsValid {
				fmt.Fprintln(out, validStyle.Render("✓ valid"))
				fmt.Fprintf(out, "git commit -m %q\n", verdict.Message)
				return nil
			}

			fmt.Fprintln(out, invalidStyle.Render("✖ invalid"))
			for _, f := range verdict.Findings {
				fmt.Fprintf(out, "  %s %s %s\n", f.Severity, f.Message, ruleStyle.Render("["+f.RuleID+"]"))
			}
			if len(verdict.Findings) == 0 && strings.TrimSpace(verdict.RawOutput) != "" {
				fmt.Fprintln(out, verdict.RawOutput)
			}

			return fmt.Errorf("commit message failed validation")
		},
	}
}
