// Package server provides the MCP server context and the dedicated
// metrics/health HTTP server for the docbridge application.
//
// # Key Components
//
// ServerContext manages Google Docs API clients with lazy initialization
// and caching. Clients are split by scope: a read-only client backs the
// document read tool, and a read-write client backs the write tool. Both
// authenticate with the same service account credentials.
//
// The ServerContext also carries the retry policy applied to every tool
// invocation and the optional metrics recorder and audit logger wired in
// by the serve command.
//
// MetricsServer exposes Prometheus metrics on a dedicated port, isolated
// from MCP traffic. HealthChecker provides Kubernetes-style liveness and
// readiness probes; readiness fails when the server is shutting down or
// no service account credentials are configured.
package server
