package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrServer       = errors.New("server error")
)

// ConnectivityError means no HTTP response was received.
type ConnectivityError struct {
	URL string
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("cannot reach server at %s: %v", e.URL, e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

func (e *ConnectivityError) Is(target error) bool { return target == ErrUnavailable }

// SessionExpiredError is an HTTP 401: the token is missing, invalid or
// expired (or, on the login endpoint, the credentials were rejected).
type SessionExpiredError struct {
	Endpoint string
	Message  string
}

func (e *SessionExpiredError) Error() string {
	return fmt.Sprintf("%s: unauthorized", e.Endpoint)
}

func (e *SessionExpiredError) Is(target error) bool { return target == ErrUnauthorized }

// ForbiddenError is an HTTP 403.
type ForbiddenError struct {
	Endpoint  string
	RequestID string
	Message   string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s: forbidden (request %s)", e.Endpoint, e.RequestID)
}

func (e *ForbiddenError) Is(target error) bool { return target == ErrForbidden }

// ServerError is any other non-2xx response.
type ServerError struct {
	Endpoint string
	Status   int
	Body     string
	Message  string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("%s: %s", e.Endpoint, e.Message)
}

func (e *ServerError) Is(target error) bool { return target == ErrServer }

// ServerMessage returns the message the server put in an error response,
// if err carries one.
func ServerMessage(err error) (string, bool) {
	var (
		se  *SessionExpiredError
		fe  *ForbiddenError
		sre *ServerError
	)
	switch {
	case errors.As(err, &se):
		return se.Message, se.Message != ""
	case errors.As(err, &fe):
		return fe.Message, fe.Message != ""
	case errors.As(err, &sre):
		return sre.Message, sre.Message != ""
	}
	return "", false
}

// StatusCode returns the HTTP status behind err, or 0 if there was none.
func StatusCode(err error) int {
	var sre *ServerError
	switch {
	case errors.As(err, &sre):
		return sre.Status
	case errors.Is(err, ErrUnauthorized):
		return 401
	case errors.Is(err, ErrForbidden):
		return 403
	}
	return 0
}

// UserMessage renders err the way it should be shown to a person.
func UserMessage(err error) string {
	var ce *ConnectivityError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ce):
		return fmt.Sprintf("Cannot reach server at %s. Check that the backend is running and that you are online, then try again.", ce.URL)
	case errors.Is(err, ErrUnauthorized):
		return "Session expired. Please log in again."
	case errors.Is(err, ErrForbidden):
		return "You do not have permission to do that."
	}
	if msg, ok := ServerMessage(err); ok {
		return msg
	}
	return err.Error()
}
