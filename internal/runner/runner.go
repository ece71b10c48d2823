// Package runner provides a narrow interface for executing external commands.
//
// Every subprocess the server spawns (git queries, the commit-message linter)
// goes through the Runner interface so components can be tested with canned
// output and exit codes instead of real binaries.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"commitkit/internal/logging"
)

var (
	// ErrCommandNotFound indicates the binary could not be located or executed
	// at all. Distinct from a command that ran and exited non-zero.
	ErrCommandNotFound = errors.New("command not found")

	// ErrCommandTimeout indicates the command exceeded its bounded deadline.
	ErrCommandTimeout = errors.New("command timed out")
)

// Result holds the captured output of a command that actually ran.
// A non-zero ExitCode is a normal Result, not an error.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner executes an external command and captures its output.
//
// dir is the working directory ("" for the process default), stdin is piped
// to the command when non-empty. Implementations must apply a bounded
// timeout; on expiry they return ErrCommandTimeout rather than block.
type Runner interface {
	Run(ctx context.Context, dir string, stdin string, name string, args ...string) (Result, error)
}

// ExecRunner runs commands with os/exec, bounded by a fixed timeout.
type ExecRunner struct {
	timeout time.Duration
	logger  *logging.AppLogger
}

// NewExecRunner creates an ExecRunner. A zero timeout disables the bound,
// leaving only the caller's context.
func NewExecRunner(timeout time.Duration, logger *logging.AppLogger) *ExecRunner {
	if logger == nil {
		logger = logging.GetDefault()
	}
	return &ExecRunner{timeout: timeout, logger: logger}
}

func (r *ExecRunner) Run(ctx context.Context, dir string, stdin string, name string, args ...string) (Result, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	r.logger.Debug("Command finished",
		"command", name,
		"args", strings.Join(args, " "),
		"duration", time.Since(start),
	)

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return res, fmt.Errorf("%s: %w", name, ErrCommandTimeout)
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// The command ran and reported failure. That is a verdict for
			// the caller to interpret, not an execution error.
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}

		if errors.Is(err, exec.ErrNotFound) {
			return res, fmt.Errorf("%s: %w", name, ErrCommandNotFound)
		}

		return res, fmt.Errorf("running %s: %w", name, err)
	}

	return res, nil
}
