// Package docs_tools provides MCP tools for interacting with Google Docs.
//
// This package registers tools that allow AI agents to:
//   - Read the full JSON structure of a Google Doc by document ID
//   - Apply a batch of edit operations (batchUpdate) to a document
//   - Get document metadata (title, owner, modified time, etc.)
//
// The read and write tools share one invocation contract: required-input
// validation fails locally, remote calls run under a bounded retry loop
// with a fixed delay between attempts, and cancellation is honored
// cooperatively at iteration boundaries. Each tool requests only the
// scopes its operation needs (read-only for reads, read-write for
// batch updates).
package docs_tools
