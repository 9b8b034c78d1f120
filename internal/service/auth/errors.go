package auth

import "errors"

// Token validation failures. The middleware maps each to a 401 and never
// echoes the underlying parser error.
var (
	ErrInvalidToken     = errors.New("invalid authentication token")
	ErrExpiredToken     = errors.New("authentication token has expired")
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")
	ErrWrongTokenType   = errors.New("wrong token type")
)

// ErrWeakSecret rejects signing secrets shorter than MinSecretLength.
var ErrWeakSecret = errors.New("jwt secret must be at least 32 characters")
