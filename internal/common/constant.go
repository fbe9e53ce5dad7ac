// Package common contains shared constants and sentinel errors used across
// the Hygieia client components.
package common

// Durable storage keys. The token keys are written on every token-mutating
// transition; the snapshot keys hold the persisted subset of each store.
// Tokens are deliberately excluded from the session snapshot so there is
// never a second, possibly stale copy of a credential.
const (
	KeyAccessToken  = "hygieia_access_token"
	KeyRefreshToken = "hygieia_refresh_token"
	KeySession      = "hygieia_user"
	KeyCart         = "hygieia_cart"
)

// RequestIDHeaderName is the HTTP header carrying the client-generated
// request id on every outbound call.
const RequestIDHeaderName = "X-Request-Id"

// Free delivery applies at or above FreeDeliveryThreshold; below it a flat
// DeliveryFee is charged.
const (
	FreeDeliveryThreshold = 50.0
	DeliveryFee           = 5.99
)
