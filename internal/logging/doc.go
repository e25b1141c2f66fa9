// Package logging provides structured logging utilities built on log/slog.
//
// It defines canonical attribute keys and helper constructors so that tool
// invocations, retry attempts, and remote calls are logged with consistent
// field names across the codebase. It also provides sanitizers for values
// that must never appear in logs verbatim (service-account credentials) and
// a truncation helper for long document identifiers.
package logging
