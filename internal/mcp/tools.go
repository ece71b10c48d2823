package mcp

import (
	"context"
	"encoding/json"
	"os"

	"commitkit/internal/guidelines"
	"commitkit/internal/lint"

	"github.com/mark3labs/mcp-go/mcp"
)

// maxDiffBytes caps the diff text included in a generation response. Staged
// diffs can be arbitrarily large; the caller gets an excerpt plus a marker.
const maxDiffBytes = 64 * 1024

// generateResult is the JSON body returned by generate_conventional_commit.
type generateResult struct {
	RepositoryPath string   `json:"repository_path"`
	StagedFiles    []string `json:"staged_files"`
	DiffExcerpt    string   `json:"diff_excerpt"`
	Status         string   `json:"status"`
	GuidelineText  string   `json:"guideline_text"`
	IsEmpty        bool     `json:"is_empty"`
	Instructions   string   `json:"instructions"`
}

// validateResult is the JSON body returned by validate_commit_message.
type validateResult struct {
	IsValid   bool           `json:"is_valid"`
	Message   string         `json:"message"`
	Errors    []lint.Finding `json:"errors"`
	RawOutput string         `json:"raw_output"`

	// GitCommand is a ready-to-use commit command, present only for valid
	// messages.
	GitCommand string `json:"git_command,omitempty"`
}

func generateTool() mcp.Tool {
	return mcp.NewTool("generate_conventional_commit",
		mcp.WithDescription(
			"Generate material for a conventional commit message by analyzing staged git changes. "+
				"Returns the repository status, the staged diff and the Conventional Commits "+
				"guidelines so the caller can write a properly formatted commit message.",
		),
		mcp.WithString("repository_path",
			mcp.Description("Path to the git repository. Defaults to the server's working directory. "+
				"Subdirectories are fine; the repository root is auto-detected."),
		),
	)
}

func validateTool() mcp.Tool {
	return mcp.NewTool("validate_commit_message",
		mcp.WithDescription(
			"Validate a commit message against conventional-commit rules using commitlint. "+
				"Returns a structured verdict with per-rule errors. A full 'git commit -m \"...\"' "+
				"command may be passed; the wrapper is stripped before validation.",
		),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("The candidate commit message to validate."),
		),
	)
}

func (s *Server) handleGenerate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	repoPath := ""
	if raw, ok := req.GetArguments()["repository_path"]; ok {
		str, isString := raw.(string)
		if !isString {
			return argumentError("repository_path must be a string"), nil
		}
		repoPath = str
	}
	if repoPath == "" {
		wd, err := os.Getwd()
		if err != nil {
			return errorResult(err), nil
		}
		repoPath = wd
	}

	doc, err := s.store.Load(guidelines.DefaultIdentifier)
	if err != nil {
		s.logger.Error("Guideline load failed", "error", err)
		return errorResult(err), nil
	}

	report, err := s.inspector.Inspect(ctx, repoPath)
	if err != nil {
		s.logger.Warn("Repository inspection failed", "path", repoPath, "error", err)
		return errorResult(err), nil
	}

	adv := s.assembler.Assemble(report, doc, repoPath)

	return jsonResult(generateResult{
		RepositoryPath: adv.Report.RepoRoot,
		StagedFiles:    adv.Report.StagedFiles,
		DiffExcerpt:    truncate(adv.Report.RawDiff, maxDiffBytes),
		Status:         adv.Report.Status,
		GuidelineText:  adv.Guideline.Content,
		IsEmpty:        adv.Report.IsEmpty,
		Instructions:   adv.Instructions,
	})
}

func (s *Server) handleValidate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message, err := req.RequireString("message")
	if err != nil {
		return argumentError("message is required and must be a string"), nil
	}

	verdict, err := s.linter.Validate(ctx, message)
	if err != nil {
		s.logger.Warn("Validation did not run", "error", err)
		return errorResult(err), nil
	}

	result := validateResult{
		IsValid:   verdict.IsValid,
		Message:   verdict.Message,
		Errors:    verdict.Findings,
		RawOutput: verdict.RawOutput,
	}
	if result.Errors == nil {
		result.Errors = []lint.Finding{}
	}
	if verdict.IsValid {
		result.GitCommand = `git commit -m "` + verdict.Message + `"`
	}

	return jsonResult(result)
}

// jsonResult serializes a response body as text content.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// truncate cuts s at limit bytes, marking the cut.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "\n... (diff truncated)"
}
