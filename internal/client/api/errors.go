package api

import "errors"

var (
	// ErrUnavailable means the backend could not be reached at the
	// transport level. Recoverable; the session is not affected.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized maps a 401: the token is invalid or expired.
	// Fatal to the session.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRejected means the backend refused the request (validation,
	// missing record, server fault). Surfaced to the user; local state
	// stays untouched.
	ErrRejected = errors.New("request rejected")
)
