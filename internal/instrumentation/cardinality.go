package instrumentation

// Cardinality management helpers for metrics.
// These functions reduce high-cardinality label values to prevent metrics explosion.
//
// # Warning
//
// High cardinality in metrics can cause:
// - Increased memory usage in Prometheus/metrics backends
// - Slower query performance
// - Higher storage costs
//
// Always use these helpers when recording metrics with document identifiers.

// documentIDLabelLimit caps how much of a document ID reaches a metric
// label. Document IDs are ~44 characters of random base64; a short prefix
// is enough to correlate a metric series with a log line.
const documentIDLabelLimit = 12

// TruncateDocumentID shortens a Google document identifier for use as a
// metric label value.
//
// Example:
//
//	TruncateDocumentID("1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms")  // "1BxiMVs0XRA5"
//	TruncateDocumentID("short")                                          // "short"
//	TruncateDocumentID("")                                               // "unknown"
func TruncateDocumentID(id string) string {
	if id == "" {
		return "unknown"
	}
	if len(id) <= documentIDLabelLimit {
		return id
	}
	return id[:documentIDLabelLimit]
}
