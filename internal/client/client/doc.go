// Package client contains the transport layer of the academy client.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) covering
//     auth, catalog, enrollments, payments, service requests and the admin
//     endpoints.
//  2. An HTTP/JSON implementation (see HTTPClient) that attaches the bearer
//     token from a TokenSource, tags every request with an X-Request-ID and
//     maps HTTP failures to sentinel errors.
//
// # Error Handling
//
// Non-2xx responses surface as *APIError. Its Message carries the server's
// "message" (or "error") field verbatim; Malformed is set when the body was
// not JSON. APIError unwraps to common.ErrUnauthorized for 401/403 and to
// common.ErrUnavailable for 5xx, so callers can match with errors.Is.
// Connection failures wrap common.ErrUnavailable; undecodable success bodies
// wrap common.ErrMalformedResponse.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation; the overall per-request timeout is
// a property of the underlying http.Client.
package client
