package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestErr(t *testing.T) {
	// Nil error should produce an attribute that slog omits entirely
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	logger.Info("op", Err(nil))
	if strings.Contains(buf.String(), "error") {
		t.Errorf("expected no error attribute for nil error, got %q", buf.String())
	}

	buf.Reset()
	logger.Info("op", Err(errors.New("boom")))
	if !strings.Contains(buf.String(), "error=boom") {
		t.Errorf("expected error attribute, got %q", buf.String())
	}
}

func TestSanitizeCredential(t *testing.T) {
	if got := SanitizeCredential(""); got != "<empty>" {
		t.Errorf("expected <empty>, got %q", got)
	}

	got := SanitizeCredential(`{"type":"service_account"}`)
	if strings.Contains(got, "service_account") {
		t.Errorf("sanitized credential leaks content: %q", got)
	}
	if !strings.HasPrefix(got, "[credential:") {
		t.Errorf("unexpected format: %q", got)
	}
}

func TestTruncateID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		n    int
		want string
	}{
		{"short id unchanged", "abc123", 30, "abc123"},
		{"exact length unchanged", "abcdef", 6, "abcdef"},
		{"long id truncated", "abcdefghij", 4, "abcd..."},
		{"whitespace trimmed", "  abc  ", 30, "abc"},
		{"zero limit returns as-is", "abcdef", 0, "abcdef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateID(tt.id, tt.n); got != tt.want {
				t.Errorf("TruncateID(%q, %d) = %q, want %q", tt.id, tt.n, got, tt.want)
			}
		})
	}
}

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, false)
	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected debug suppressed at info level, got %q", buf.String())
	}

	logger = NewLogger(&buf, true)
	logger.Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("expected debug message at debug level, got %q", buf.String())
	}
}
