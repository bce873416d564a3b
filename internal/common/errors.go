// Package common defines shared sentinel errors used across the client
// layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// ErrNotFound is returned when the backend reports a missing record
	// (profile, post, user).
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized is returned when the session credential is missing,
	// expired, or rejected.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnavailable is returned when the backend or broker cannot be reached
	// at all (connection refused, DNS failure, timeout).
	ErrUnavailable = errors.New("server unavailable")

	// ErrInternal covers unexpected non-2xx responses that do not map to a
	// more specific sentinel.
	ErrInternal = errors.New("internal error")
)
