// Package auth validates the bearer tokens that identify users. Tokens are
// issued by the platform's identity service; GenerateToken exists for local
// development and tests.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AccessTokenType is the only token type accepted by ValidateToken.
const AccessTokenType = "access"

// MinSecretLength is the shortest accepted HMAC signing secret.
const MinSecretLength = 32

// JWTService issues and verifies user access tokens.
type JWTService interface {
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken returns the token's claims, or one of the package's
	// sentinel errors when the token is expired, malformed or of the wrong type.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the verified content of an access token.
type Claims struct {
	UserID    uuid.UUID
	TokenType string
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}
