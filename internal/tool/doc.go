// Package tool defines the execution contract shared by all agent tools:
// static descriptors (Meta), per-instance configuration with validation
// (Param), the cancellable retrying invocation loop (Runner), and the
// three-way invocation result (Result).
//
// The contract in one paragraph: an invocation validates its inputs
// locally (non-retried failures), then performs up to MaxRetries+1
// sequential remote attempts with a fixed delay between them, polling for
// cooperative cancellation at each iteration boundary. It terminates in
// exactly one of three states: success carrying the serialized remote
// response, error carrying the last observed failure message, or canceled
// carrying nothing. The caller bounds the whole invocation with the
// ExecTimeout deadline.
package tool
