package mcp

import (
	"encoding/json"
	"errors"
	"fmt"

	"commitkit/internal/gitrepo"
	"commitkit/internal/guidelines"
	"commitkit/internal/lint"

	"github.com/mark3labs/mcp-go/mcp"
)

// Stable protocol error codes. Each internal error kind maps to exactly one
// code; callers can branch on these without parsing messages.
const (
	CodeInvalidArgument      = "INVALID_ARGUMENT"
	CodeRepoNotFound         = "REPO_NOT_FOUND"
	CodeRepoAccess           = "REPO_ACCESS"
	CodeGuidelineNotFound    = "GUIDELINE_NOT_FOUND"
	CodeGuidelineRead        = "GUIDELINE_READ"
	CodeEmptyMessage         = "EMPTY_MESSAGE"
	CodeValidatorUnavailable = "VALIDATOR_UNAVAILABLE"
	CodeInternal             = "INTERNAL"
)

// errorPayload is the structured error body returned to the caller.
type errorPayload struct {
	Code  string `json:"code"`
	Error string `json:"error"`
	Hint  string `json:"hint,omitempty"`
}

// classify maps an internal error to its stable code and a remediation hint.
func classify(err error) errorPayload {
	switch {
	case errors.Is(err, gitrepo.ErrRepositoryNotFound):
		return errorPayload{
			Code:  CodeRepoNotFound,
			Error: err.Error(),
			Hint:  "Make sure the path exists and points inside a git repository.",
		}
	case errors.Is(err, gitrepo.ErrRepositoryAccess):
		return errorPayload{
			Code:  CodeRepoAccess,
			Error: err.Error(),
			Hint:  "Make sure the git binary is installed and the repository is readable.",
		}
	case errors.Is(err, guidelines.ErrGuidelineNotFound):
		return errorPayload{
			Code:  CodeGuidelineNotFound,
			Error: err.Error(),
			Hint:  "No guideline document exists for that identifier. Check guideline_dir in the config.",
		}
	case errors.Is(err, guidelines.ErrGuidelineRead):
		return errorPayload{
			Code:  CodeGuidelineRead,
			Error: err.Error(),
			Hint:  "The guideline file exists but could not be read or parsed. This is a deployment problem, not a caller mistake.",
		}
	case errors.Is(err, lint.ErrEmptyMessage):
		return errorPayload{
			Code:  CodeEmptyMessage,
			Error: err.Error(),
			Hint:  "Provide a non-empty commit message to validate.",
		}
	case errors.Is(err, lint.ErrValidatorUnavailable):
		return errorPayload{
			Code:  CodeValidatorUnavailable,
			Error: err.Error(),
			Hint:  "Install commitlint with: npm install -g @commitlint/cli @commitlint/config-conventional",
		}
	default:
		return errorPayload{
			Code:  CodeInternal,
			Error: err.Error(),
		}
	}
}

// errorResult translates an internal error into a protocol error result.
func errorResult(err error) *mcp.CallToolResult {
	payload := classify(err)
	data, jsonErr := json.Marshal(payload)
	if jsonErr != nil {
		return mcp.NewToolResultError(fmt.Sprintf(`{"code":%q,"error":"failed to encode error payload"}`, CodeInternal))
	}
	return mcp.NewToolResultError(string(data))
}

// argumentError builds an INVALID_ARGUMENT result without consulting any
// collaborator.
func argumentError(msg string) *mcp.CallToolResult {
	data, err := json.Marshal(errorPayload{Code: CodeInvalidArgument, Error: msg})
	if err != nil {
		return mcp.NewToolResultError(msg)
	}
	return mcp.NewToolResultError(string(data))
}
