// Package lint validates candidate commit messages with an external linter.
//
// The linter (commitlint by default) receives the message on stdin and
// reports a verdict through its exit status plus per-rule diagnostics on
// stdout. A failing message is a normal Verdict; only a linter that cannot
// run at all is an error.
package lint

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"commitkit/internal/logging"
	"commitkit/internal/runner"
)

var (
	// ErrEmptyMessage indicates the candidate message was empty. The linter
	// is never invoked for this case.
	ErrEmptyMessage = errors.New("commit message is empty")

	// ErrValidatorUnavailable indicates the linter could not be located or
	// executed at all. Never conflated with a message failing validation.
	ErrValidatorUnavailable = errors.New("validator unavailable")
)

// Severity values reported by the linter.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Finding is one rule violation reported by the linter.
type Finding struct {
	RuleID   string `json:"rule_id"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// Verdict is the structured outcome of validating one message.
type Verdict struct {
	IsValid bool `json:"is_valid"`

	// Message is the text that was actually validated, after any
	// `git commit -m` wrapper has been stripped.
	Message string `json:"message"`

	// RawOutput preserves the linter's full textual output even when it
	// could not be parsed into Findings.
	RawOutput string `json:"raw_output"`

	Findings []Finding `json:"errors"`
}

// Runner invokes the external commit-message linter.
type Runner struct {
	command string
	run     runner.Runner
	logger  *logging.AppLogger
}

// NewRunner creates a Runner invoking the named linter command.
func NewRunner(command string, run runner.Runner, logger *logging.AppLogger) *Runner {
	if logger == nil {
		logger = logging.GetDefault()
	}
	return &Runner{command: command, run: run, logger: logger}
}

// commitWrapperRe matches a quoted `git commit -m "..."` wrapper so callers
// can paste the whole command they were handed.
var commitWrapperRe = regexp.MustCompile(`git commit -m ["'](.+?)["']`)

// StripCommitWrapper extracts the bare message from a `git commit -m` command
// line. Messages without the wrapper pass through unchanged.
func StripCommitWrapper(message string) string {
	trimmed := strings.TrimSpace(message)
	if !strings.HasPrefix(trimmed, "git commit -m") {
		return message
	}

	if m := commitWrapperRe.FindStringSubmatch(trimmed); m != nil {
		return m[1]
	}

	// Unquoted fallback: drop the prefix and any stray quotes.
	rest := strings.TrimSpace(strings.TrimPrefix(trimmed, "git commit -m"))
	rest = strings.Trim(rest, `"`)
	rest = strings.Trim(rest, `'`)
	return rest
}

// Validate runs the linter against message and returns its verdict.
//
// Exit 0 means valid with no findings. A non-zero exit yields an invalid
// verdict with whatever findings the output parser recovers; when nothing is
// parseable the verdict still carries the full raw output.
func (r *Runner) Validate(ctx context.Context, message string) (Verdict, error) {
	message = StripCommitWrapper(message)
	if strings.TrimSpace(message) == "" {
		return Verdict{}, ErrEmptyMessage
	}

	res, err := r.run.Run(ctx, "", message, r.command)
	if err != nil {
		// Missing binary, permission problem or timeout. Running and
		// reporting an invalid message is not this branch.
		return Verdict{}, fmt.Errorf("%w: %v", ErrValidatorUnavailable, err)
	}

	rawOutput := res.Stdout
	if strings.TrimSpace(rawOutput) == "" {
		rawOutput = res.Stderr
	}

	verdict := Verdict{
		Message:   message,
		RawOutput: rawOutput,
	}

	if res.ExitCode == 0 {
		verdict.IsValid = true
		return verdict, nil
	}

	verdict.Findings = parseFindings(rawOutput)
	r.logger.Debug("Message failed validation",
		"findings", len(verdict.Findings),
		"exitCode", res.ExitCode,
	)
	return verdict, nil
}

// findingRe matches commitlint diagnostic lines:
//
//	✖   subject may not be empty [subject-empty]
//	⚠   body must have leading blank line [body-leading-blank]
var findingRe = regexp.MustCompile(`^\s*([✖⚠])\s+(.+?)\s+\[([a-z0-9-]+)\]\s*$`)

// parseFindings extracts structured findings from the linter's text output.
// The trailing "found N problems" summary also starts with ✖ but carries no
// rule id, so it never matches.
func parseFindings(output string) []Finding {
	var findings []Finding

	for _, line := range strings.Split(output, "\n") {
		m := findingRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		severity := SeverityError
		if m[1] == "⚠" {
			severity = SeverityWarning
		}

		findings = append(findings, Finding{
			RuleID:   m[3],
			Message:  m[2],
			Severity: severity,
		})
	}

	return findings
}
