package runner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"commitkit/internal/logging"
)

func newTestRunner(timeout time.Duration) *ExecRunner {
	logger, _ := logging.NewTestLogger()
	return NewExecRunner(timeout, logger)
}

func requireUnix(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test relies on POSIX shell utilities")
	}
}

func TestRun_CapturesStdout(t *testing.T) {
	requireUnix(t)
	r := newTestRunner(5 * time.Second)

	res, err := r.Run(context.Background(), "", "", "sh", "-c", "echo hello")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if strings.TrimSpace(res.Stdout) != "hello" {
		t.Errorf("Stdout = %q, want hello", res.Stdout)
	}
	if res.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", res.ExitCode)
	}
}

func TestRun_PipesStdin(t *testing.T) {
	requireUnix(t)
	r := newTestRunner(5 * time.Second)

	res, err := r.Run(context.Background(), "", "piped input", "cat")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Stdout != "piped input" {
		t.Errorf("Stdout = %q, want piped input", res.Stdout)
	}
}

func TestRun_NonZeroExitIsNotAnError(t *testing.T) {
	requireUnix(t)
	r := newTestRunner(5 * time.Second)

	res, err := r.Run(context.Background(), "", "", "sh", "-c", "echo oops >&2; exit 3")
	if err != nil {
		t.Fatalf("Non-zero exit should not be an error, got: %v", err)
	}
	if res.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", res.ExitCode)
	}
	if strings.TrimSpace(res.Stderr) != "oops" {
		t.Errorf("Stderr = %q, want oops", res.Stderr)
	}
}

func TestRun_CommandNotFound(t *testing.T) {
	r := newTestRunner(5 * time.Second)

	_, err := r.Run(context.Background(), "", "", "definitely-not-a-real-binary-4f1a")
	if !errors.Is(err, ErrCommandNotFound) {
		t.Fatalf("Expected ErrCommandNotFound, got: %v", err)
	}
}

func TestRun_Timeout(t *testing.T) {
	requireUnix(t)
	r := newTestRunner(50 * time.Millisecond)

	_, err := r.Run(context.Background(), "", "", "sh", "-c", "sleep 5")
	if !errors.Is(err, ErrCommandTimeout) {
		t.Fatalf("Expected ErrCommandTimeout, got: %v", err)
	}
}

func TestRun_WorkingDirectory(t *testing.T) {
	requireUnix(t)
	r := newTestRunner(5 * time.Second)

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "marker.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("Failed to write marker file: %v", err)
	}

	res, err := r.Run(context.Background(), dir, "", "ls")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(res.Stdout, "marker.txt") {
		t.Errorf("Expected ls in the working directory to list marker.txt, got: %q", res.Stdout)
	}
}

func TestFake_ScriptedResponses(t *testing.T) {
	fake := &Fake{
		Responses: []FakeEntry{
			{Name: "git", ArgMatch: "diff --staged", Response: Response{Result: Result{Stdout: "the diff"}}},
			{Name: "git", Response: Response{Result: Result{Stdout: "fallback"}}},
		},
	}

	res, err := fake.Run(context.Background(), "/repo", "", "git", "diff", "--staged")
	if err != nil {
		t.Fatalf("Fake.Run failed: %v", err)
	}
	if res.Stdout != "the diff" {
		t.Errorf("Stdout = %q, want the diff", res.Stdout)
	}

	res, _ = fake.Run(context.Background(), "/repo", "", "git", "status")
	if res.Stdout != "fallback" {
		t.Errorf("Stdout = %q, want fallback", res.Stdout)
	}

	if !fake.CalledWith("git", "status") {
		t.Error("Expected the status call to be recorded")
	}
	if len(fake.Calls) != 2 {
		t.Errorf("Expected 2 recorded calls, got %d", len(fake.Calls))
	}
}
