// Package common provides shared utilities for MCP tool implementations.
// It contains the instrumented handler wrappers and argument helpers used
// across the tool packages to ensure consistent behavior.
package common
