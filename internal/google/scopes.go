package google

import (
	docs "google.golang.org/api/docs/v1"
)

// ReadOnlyScopes is the minimum permission set for read operations:
// fetching document content and Drive file metadata.
var ReadOnlyScopes = []string{
	docs.DocumentsReadonlyScope,
	docs.DriveReadonlyScope,
}

// ReadWriteScopes is the permission set for write operations.
// Batch updates require full documents access; Drive access is included
// for parity with the read path (metadata lookups on writable documents).
var ReadWriteScopes = []string{
	docs.DocumentsScope,
	docs.DriveScope,
}
