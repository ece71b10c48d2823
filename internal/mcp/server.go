package mcp

import (
	"context"
	"fmt"

	"commitkit/internal/advisory"
	"commitkit/internal/config"
	"commitkit/internal/gitrepo"
	"commitkit/internal/guidelines"
	"commitkit/internal/lint"
	"commitkit/internal/logging"
	"commitkit/internal/runner"

	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Server represents an MCP server instance using mcp-go
type Server struct {
	config    *config.Config
	logger    *logging.AppLogger
	inspector *gitrepo.Inspector
	store     *guidelines.Store
	linter    *lint.Runner
	assembler *advisory.Assembler
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance with real collaborators wired
// from the configuration.
func NewServer(cfg *config.Config, logger *logging.AppLogger) *Server {
	if logger == nil {
		logger = logging.GetDefault()
	}

	gitRun := runner.NewExecRunner(cfg.GitTimeout(), logger)
	lintRun := runner.NewExecRunner(cfg.LintTimeout(), logger)

	return newServer(cfg, logger,
		gitrepo.NewInspector(gitRun, logger),
		guidelines.NewStore(cfg.GuidelineDir, logger),
		lint.NewRunner(cfg.LinterCommand, lintRun, logger),
	)
}

// newServer wires a Server from explicit collaborators. Tests use it to
// inject inspectors and linters backed by canned command runners.
func newServer(cfg *config.Config, logger *logging.AppLogger, inspector *gitrepo.Inspector, store *guidelines.Store, linter *lint.Runner) *Server {
	s := &Server{
		config:    cfg,
		logger:    logger,
		inspector: inspector,
		store:     store,
		linter:    linter,
		assembler: advisory.NewAssembler(),
	}

	s.mcpServer = server.NewMCPServer(
		"commitkit",
		Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	s.mcpServer.AddTool(generateTool(), s.handleGenerate)
	s.mcpServer.AddTool(validateTool(), s.handleValidate)

	return s
}

// Start serves the MCP protocol over stdio until the client disconnects.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("Starting MCP server", "transport", "stdio", "version", Version)

	if err := server.ServeStdio(s.mcpServer); err != nil && ctx.Err() == nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}

// StartHTTP serves the same tools over a streamable HTTP listener. Tool
// behavior is identical to stdio; only the transport differs.
func (s *Server) StartHTTP(ctx context.Context, addr string) error {
	s.logger.Info("Starting MCP server", "transport", "http", "addr", addr, "version", Version)

	httpServer := server.NewStreamableHTTPServer(s.mcpServer)
	if err := httpServer.Start(addr); err != nil && ctx.Err() == nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}

// serverInstructions tells the calling assistant how the two tools fit
// together.
func serverInstructions() string {
	return `You have access to commitkit, an MCP server for writing conventional commit messages.

Workflow:
1. Stage the changes you want to commit (git add).
2. Call generate_conventional_commit with the repository path. It returns the
   staged diff, the repository status and the Conventional Commits guidelines.
   YOU write the commit message from that material - the tool never writes it.
3. Call validate_commit_message with your candidate message. Fix any reported
   rule violations and validate again.
4. When the message is valid, output: git commit -m "your message"

An empty-diff response is not an error: it means nothing is staged, and the
user needs to run git add first.`
}
