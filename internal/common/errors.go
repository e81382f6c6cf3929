// Package common defines shared constants and sentinel errors used across
// EcoScan components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal    = errors.New("internal error")
	ErrorTransaction = errors.New("transaction failed")

	// Validation errors (missing/empty upload, malformed form input).
	ErrorValidation = errors.New("validation error")

	// Auth errors.
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorEmailTaken   = errors.New("email already registered")
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")

	// Remote classifier errors (unreachable, errored, or timed out).
	ErrorRemoteService = errors.New("remote service error")

	// Chat session errors.
	ErrorSessionExpired = errors.New("session expired")
)
