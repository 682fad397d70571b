package common

import "errors"

var (
	ErrorNotFound = errors.New("not found")

	// ErrEmptyToken is returned when a blank token is offered for storage
	// or for a session transition.
	ErrEmptyToken = errors.New("empty token")

	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	ErrorInvalidLoginPassword = errors.New("invalid login/password")
	ErrorLoginAlreadyExists   = errors.New("login already exists")
	ErrorValidation           = errors.New("validation error")
)
