// Package common contains constants and sentinel errors shared by the
// client core and the development server.
package common

const (
	// AuthorizationHeaderName carries the bearer token on outbound requests.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the token in the Authorization header value.
	BearerPrefix = "Bearer "

	// RequestIDHeaderName correlates a client call with server-side logs.
	RequestIDHeaderName = "X-Request-ID"

	// TokenKey is the fixed key the session token is stored under in both
	// credential backends.
	TokenKey = "authToken"
)
