// Package client is the single choke point for calls to the Elementopia API.
//
// # Overview
//
// Gateway wraps an *http.Client with:
//  1. Request decoration: every request gets JSON headers, an X-Request-ID
//     and, when the TokenSource yields one, "Authorization: Bearer <token>".
//     A TokenSource failure or stall degrades to an unauthenticated request.
//  2. Response classification into the error taxonomy below.
//  3. Bounded exponential retry of connectivity failures on idempotent
//     methods only.
//  4. A session-expiry hook fired after a 401 on an authenticated call.
//
// # Error Handling
//
// Failures surface as typed errors that also match sentinels via errors.Is:
//
//	*ConnectivityError   -> ErrUnavailable   (no response: DNS, offline, timeout)
//	*SessionExpiredError -> ErrUnauthorized  (HTTP 401)
//	*ForbiddenError      -> ErrForbidden     (HTTP 403, logged with detail)
//	*ServerError         -> ErrServer        (any other non-2xx)
//
// A caller cancelling its context gets context.Canceled back, not a
// ConnectivityError.
//
// Concurrency & Contexts
//
// Gateway is safe for concurrent use and keeps no per-call state; two
// concurrent calls never share a response. All calls honor the context.
package client
