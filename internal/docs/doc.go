// Package docs provides a client for the Google Docs API authenticated
// with a service account.
//
// The package handles:
//   - Service-account authentication scoped per operation (read-only for
//     fetches, read-write for batch updates)
//   - Document retrieval via the Docs API, including multi-tab documents
//   - Batch update application with an ordered operation list
//   - Drive file metadata retrieval
//   - Parsing of untyped batchUpdate operation payloads
//
// Example usage:
//
//	client, err := docs.NewReadOnlyClient(ctx, credentialsJSON)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	doc, err := client.GetDocument(ctx, "1ABC123xyz")
//	if err != nil {
//	    log.Fatal(err)
//	}
package docs
