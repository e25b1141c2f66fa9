// Package cmd implements the command-line interface for docbridge.
//
// This package provides the following commands:
//   - serve: Start the MCP server exposing the Google Docs tools
//   - read: Read a Google Doc and print its JSON structure
//   - write: Apply batchUpdate operations to a Google Doc
//   - version: Display version information
//
// The serve command is the default command when no subcommand is specified.
package cmd
