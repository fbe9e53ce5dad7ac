package common

import "errors"

var (
	// Repository / lookup errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrInternal = errors.New("internal error")

	// Auth errors: credentials rejected by the server or no token present.
	ErrUnauthorized = errors.New("unauthorized")

	// Transport failure before any response was received.
	ErrNetwork = errors.New("network error")

	// Client-side form validation failure; never reaches the network.
	ErrValidation = errors.New("validation error")

	// Token lifecycle: the refresh path itself was rejected, so the local
	// session was cleared and the user must log in again.
	ErrSessionExpired = errors.New("session expired")
)
