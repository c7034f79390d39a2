// Package common defines shared constants and sentinel errors used across
// the client and server layers of the welfare admin console. Callers should
// use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors are resolved locally, before a request is issued.
	ErrorValidation = errors.New("validation error")

	ErrorLoginAlreadyExists   = errors.New("login already exists")
	ErrorInvalidLoginPassword = errors.New("invalid login/password")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	ErrorUnknownCollection = errors.New("unknown collection")
)
