package tool

import (
	"fmt"
	"strings"
	"time"
)

// Default retry policy applied when a Param is built without explicit
// values.
const (
	DefaultMaxRetries      = 2
	DefaultDelayAfterError = 1 * time.Second
)

// ConfigError reports invalid tool configuration detected by Check.
// Configuration errors fail fast, before any invocation runs.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
}

// Param is runtime configuration for one tool instance: the static Meta,
// the service-account credential blob, and the shared retry policy. A
// Param is constructed once per tool configuration and reused across
// invocations; it must pass Check before first use and is treated as
// immutable afterwards.
type Param struct {
	Meta Meta

	// ServiceAccountJSON is the opaque credential blob, configured by the
	// user when adding the tool to an agent.
	ServiceAccountJSON string

	// MaxRetries is the number of additional attempts after the first
	// failed remote call.
	MaxRetries int

	// DelayAfterError is the fixed wait between consecutive attempts.
	DelayAfterError time.Duration
}

// Check validates the configuration. It fails when the credential blob is
// empty or blank, or when the retry policy is negative.
func (p *Param) Check() error {
	if strings.TrimSpace(p.ServiceAccountJSON) == "" {
		return &ConfigError{Field: "Service Account JSON", Reason: "must not be empty"}
	}
	if p.MaxRetries < 0 {
		return &ConfigError{Field: "max retries", Reason: "must not be negative"}
	}
	if p.DelayAfterError < 0 {
		return &ConfigError{Field: "delay after error", Reason: "must not be negative"}
	}
	return nil
}
