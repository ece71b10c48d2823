// Package mcp provides the Model Context Protocol (MCP) server for commitkit using mcp-go.
//
// This package implements an MCP server that lets AI coding assistants prepare
// and check conventional commit messages. Two tools are exposed:
//
//   - generate_conventional_commit: inspects a repository's staged changes and
//     returns the diff, status and guideline material needed to write a
//     properly formatted commit message
//   - validate_commit_message: runs a candidate message through an external
//     commit-message linter and returns a structured verdict
//
// # Implementation
//
// The package uses the mcp-go library (github.com/mark3labs/mcp-go). The
// server itself holds no business logic: it validates tool arguments, routes
// to the gitrepo, guidelines, lint and advisory packages, and translates
// every internal error into a protocol-visible payload with a stable code.
// Raw internal errors never leak to the caller.
//
// # Transport
//
// The server is transport-agnostic. Start serves JSON-RPC over stdio (the
// usual subprocess integration); StartHTTP serves the same tools over a
// streamable HTTP listener. No tool behavior depends on which transport
// carried the request.
//
//	commitkit serve
//	commitkit serve --http :8391
//
// # Concurrency
//
// Tool invocations are independent and may be served concurrently. The only
// cross-call state is the guideline store's write-once cache, which is safe
// for concurrent readers.
//
// # References
//
// - MCP Specification: https://modelcontextprotocol.io/specification
// - mcp-go Library: https://github.com/mark3labs/mcp-go
package mcp
