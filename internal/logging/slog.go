package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Common log attribute keys for consistent naming across the codebase.
const (
	KeyOperation = "operation"
	KeyService   = "service"
	KeyTool      = "tool"
	KeyDocument  = "document"
	KeyAttempt   = "attempt"
	KeyDuration  = "duration"
	KeyStatus    = "status"
	KeyError     = "error"
)

// Status values for consistent logging.
// Note: These are intentionally duplicated from instrumentation package
// to avoid circular dependencies (instrumentation imports logging).
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// NewLogger creates a slog.Logger writing to w. When debug is true the
// level is lowered to Debug. The MCP stdio transport owns stdout, so
// callers must pass os.Stderr (or a file) for stdio deployments.
func NewLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Setup installs a stderr logger as the process default and returns it.
func Setup(debug bool) *slog.Logger {
	logger := NewLogger(os.Stderr, debug)
	slog.SetDefault(logger)
	return logger
}

// WithTool returns a logger with the tool attribute set.
func WithTool(logger *slog.Logger, tool string) *slog.Logger {
	return logger.With(slog.String(KeyTool, tool))
}

// WithService returns a logger with the service attribute set.
func WithService(logger *slog.Logger, service string) *slog.Logger {
	return logger.With(slog.String(KeyService, service))
}

// Operation returns a slog attribute for the operation name.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Service returns a slog attribute for the service name.
func Service(svc string) slog.Attr {
	return slog.String(KeyService, svc)
}

// Tool returns a slog attribute for the tool name.
func Tool(tool string) slog.Attr {
	return slog.String(KeyTool, tool)
}

// Document returns a slog attribute for a document ID, truncated to keep
// log lines short and to avoid spilling full identifiers into shared sinks.
func Document(id string) slog.Attr {
	return slog.String(KeyDocument, TruncateID(id, 30))
}

// Attempt returns a slog attribute for the 1-based attempt number.
func Attempt(n int) slog.Attr {
	return slog.Int(KeyAttempt, n)
}

// Status returns a slog attribute for the status.
func Status(status string) slog.Attr {
	return slog.String(KeyStatus, status)
}

// Err returns a slog attribute for an error.
// If err is nil, returns an empty Group attribute that will be omitted from output.
// This allows safely passing Err(maybeNilErr) without adding empty attributes.
//
// Usage:
//
//	logger.Info("operation", logging.Err(err))  // Safe even if err is nil
func Err(err error) slog.Attr {
	if err == nil {
		// Return an empty Group that slog will omit from output
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}

// SanitizeCredential returns a masked version of a credential blob for
// logging. It returns a length indicator without exposing any content, as
// even fragments of a service-account key can aid attacks.
func SanitizeCredential(credential string) string {
	if credential == "" {
		return "<empty>"
	}
	return fmt.Sprintf("[credential:%d chars]", len(credential))
}

// TruncateID shortens an identifier to at most n characters for display.
// Truncated values get an ellipsis suffix.
func TruncateID(id string, n int) string {
	id = strings.TrimSpace(id)
	if n <= 0 || len(id) <= n {
		return id
	}
	return id[:n] + "..."
}
