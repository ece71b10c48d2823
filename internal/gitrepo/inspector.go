// Package gitrepo inspects a local git working tree for staged changes.
//
// All queries are read-only: repository detection goes through go-git, and
// the status/diff content comes from the git CLI via runner.Runner so the
// output matches what a developer sees in their own terminal.
package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"commitkit/internal/logging"
	"commitkit/internal/runner"

	git "github.com/go-git/go-git/v6"
)

var (
	// ErrRepositoryNotFound indicates the path does not exist or is not
	// inside a git repository.
	ErrRepositoryNotFound = errors.New("repository not found")

	// ErrRepositoryAccess indicates the repository exists but could not be
	// queried (git binary missing, permission denied, timeout).
	ErrRepositoryAccess = errors.New("repository access failed")
)

// DiffReport describes the staged state of a repository at inspection time.
// Reports are produced fresh on every call; the working tree changes between
// calls, so nothing here is cached.
type DiffReport struct {
	// RepoRoot is the absolute path of the repository's top-level directory,
	// resolved even when the inspected path is a subdirectory.
	RepoRoot string

	// StagedFiles lists the paths staged for the next commit, in git's order.
	StagedFiles []string

	// RawDiff is the unified diff of staged content only.
	RawDiff string

	// Status is the human-readable `git status` output.
	Status string

	// IsEmpty is true when nothing is staged. This is a reportable state,
	// not an error.
	IsEmpty bool
}

// Inspector runs read-only git queries against a working directory.
type Inspector struct {
	run    runner.Runner
	logger *logging.AppLogger
}

// NewInspector creates an Inspector using the given command runner.
func NewInspector(run runner.Runner, logger *logging.AppLogger) *Inspector {
	if logger == nil {
		logger = logging.GetDefault()
	}
	return &Inspector{run: run, logger: logger}
}

// Inspect returns the staged diff and status of the repository at path.
// An empty staged diff yields IsEmpty = true, never an error.
func (i *Inspector) Inspect(ctx context.Context, repositoryPath string) (DiffReport, error) {
	var report DiffReport

	if strings.TrimSpace(repositoryPath) == "" {
		return report, fmt.Errorf("%w: repository path is empty", ErrRepositoryNotFound)
	}

	info, err := os.Stat(repositoryPath)
	if err != nil {
		return report, fmt.Errorf("%w: %s", ErrRepositoryNotFound, repositoryPath)
	}
	if !info.IsDir() {
		return report, fmt.Errorf("%w: %s is not a directory", ErrRepositoryNotFound, repositoryPath)
	}

	// Detection via go-git distinguishes "not a repository" from the CLI
	// queries failing later for environmental reasons.
	if _, err := git.PlainOpenWithOptions(repositoryPath, &git.PlainOpenOptions{DetectDotGit: true}); err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return report, fmt.Errorf("%w: %s is not a git repository", ErrRepositoryNotFound, repositoryPath)
		}
		return report, fmt.Errorf("%w: opening %s: %v", ErrRepositoryAccess, repositoryPath, err)
	}

	root, err := i.gitQuery(ctx, repositoryPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return report, err
	}
	report.RepoRoot = strings.TrimSpace(root)

	status, err := i.gitQuery(ctx, report.RepoRoot, "status")
	if err != nil {
		return report, err
	}
	report.Status = status

	diff, err := i.gitQuery(ctx, report.RepoRoot, "diff", "--staged")
	if err != nil {
		return report, err
	}
	report.RawDiff = diff
	report.IsEmpty = strings.TrimSpace(diff) == ""

	names, err := i.gitQuery(ctx, report.RepoRoot, "diff", "--staged", "--name-only")
	if err != nil {
		return report, err
	}
	for _, line := range strings.Split(names, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			report.StagedFiles = append(report.StagedFiles, line)
		}
	}

	i.logger.Debug("Repository inspected",
		"root", report.RepoRoot,
		"stagedFiles", len(report.StagedFiles),
		"isEmpty", report.IsEmpty,
	)

	return report, nil
}

// gitQuery runs one git subcommand in dir and returns its stdout.
func (i *Inspector) gitQuery(ctx context.Context, dir string, args ...string) (string, error) {
	res, err := i.run.Run(ctx, dir, "", "git", args...)
	if err != nil {
		// Missing binary, permission problem or timeout. Not transient, not
		// retried here.
		return "", fmt.Errorf("%w: git %s: %v", ErrRepositoryAccess, strings.Join(args, " "), err)
	}
	if res.ExitCode != 0 {
		msg := strings.TrimSpace(res.Stderr)
		if msg == "" {
			msg = strings.TrimSpace(res.Stdout)
		}
		return "", fmt.Errorf("%w: git %s exited %d: %s", ErrRepositoryAccess, strings.Join(args, " "), res.ExitCode, msg)
	}
	return res.Stdout, nil
}
