package auth

import "errors"

// Sentinel errors for token verification. The API layer classifies these
// with errors.Is; all of them terminate a request with 401.
var (
	// ErrMissingToken indicates no bearer token accompanied the request.
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrInvalidToken indicates a malformed token or a signature that does
	// not verify against the configured secret.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token's exp claim is in the past.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the token's nbf claim is in the future.
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")
)
