package server

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/docbridge/docbridge/internal/docs"
	"github.com/docbridge/docbridge/internal/instrumentation"
	"github.com/docbridge/docbridge/internal/tool"
)

// ServerContext holds the context for the MCP server
type ServerContext struct {
	ctx    context.Context
	cancel context.CancelFunc

	// Service account credentials used for all Google API access
	credentialsJSON string

	// Retry policy applied to every tool invocation
	maxRetries      int
	delayAfterError time.Duration

	// Lazily created Docs clients, split by scope
	readClient  *docs.Client
	writeClient *docs.Client

	// Observability, optional
	metrics     *instrumentation.Metrics
	auditLogger *instrumentation.AuditLogger

	mu       sync.RWMutex
	shutdown bool
}

// Option configures a ServerContext.
type Option func(*ServerContext)

// WithRetryPolicy sets the retry policy applied to tool invocations.
func WithRetryPolicy(maxRetries int, delayAfterError time.Duration) Option {
	return func(sc *ServerContext) {
		sc.maxRetries = maxRetries
		sc.delayAfterError = delayAfterError
	}
}

// WithMetrics sets the metrics recorder used by tool handlers.
func WithMetrics(m *instrumentation.Metrics) Option {
	return func(sc *ServerContext) {
		sc.metrics = m
	}
}

// WithAuditLogger sets the audit logger used by tool handlers.
func WithAuditLogger(al *instrumentation.AuditLogger) Option {
	return func(sc *ServerContext) {
		sc.auditLogger = al
	}
}

// NewServerContext creates a new server context. The credentials blob is
// held for lazy client construction; it is not validated against the
// Google APIs until a client is first needed.
func NewServerContext(ctx context.Context, credentialsJSON string, opts ...Option) (*ServerContext, error) {
	shutdownCtx, cancel := context.WithCancel(ctx)

	sc := &ServerContext{
		ctx:             shutdownCtx,
		cancel:          cancel,
		credentialsJSON: credentialsJSON,
		maxRetries:      tool.DefaultMaxRetries,
		delayAfterError: tool.DefaultDelayAfterError,
	}

	for _, opt := range opts {
		opt(sc)
	}

	return sc, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// CredentialsJSON returns the service account credentials blob.
func (sc *ServerContext) CredentialsJSON() string {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.credentialsJSON
}

// RetryPolicy returns the configured retry policy for tool invocations.
func (sc *ServerContext) RetryPolicy() (maxRetries int, delayAfterError time.Duration) {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.maxRetries, sc.delayAfterError
}

// Metrics returns the metrics recorder, or nil when instrumentation is off.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// AuditLogger returns the audit logger, or nil when audit logging is off.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// ReadClient returns the read-only Docs client.
// Creates and caches the client if it doesn't exist yet.
// Returns nil if the client cannot be created.
func (sc *ServerContext) ReadClient() *docs.Client {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.readClient != nil {
		return sc.readClient
	}

	client, err := docs.NewReadOnlyClient(sc.ctx, sc.credentialsJSON)
	if err != nil {
		slog.Warn("failed to create read-only Docs client", "error", err)
		return nil
	}

	sc.readClient = client
	return client
}

// WriteClient returns the read-write Docs client.
// Creates and caches the client if it doesn't exist yet.
// Returns nil if the client cannot be created.
func (sc *ServerContext) WriteClient() *docs.Client {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.writeClient != nil {
		return sc.writeClient
	}

	client, err := docs.NewReadWriteClient(sc.ctx, sc.credentialsJSON)
	if err != nil {
		slog.Warn("failed to create read-write Docs client", "error", err)
		return nil
	}

	sc.writeClient = client
	return client
}

// SetReadClient sets the read-only Docs client.
func (sc *ServerContext) SetReadClient(client *docs.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.readClient = client
}

// SetWriteClient sets the read-write Docs client.
func (sc *ServerContext) SetWriteClient(client *docs.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.writeClient = client
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
