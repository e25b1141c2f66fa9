// Package google provides service-account authentication for Google APIs.
//
// Unlike interactive OAuth flows, service accounts authenticate without a
// human login step: the caller supplies the JSON key document as an opaque
// blob and receives a token source scoped to the minimum permission set the
// operation needs (read-only scopes for reads, read-write scopes for
// batch updates).
package google
