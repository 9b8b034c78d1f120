package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/attune-api/internal/config"
	"github.com/phrazzld/attune-api/internal/platform/logger"
)

// DefaultClockSkew is the leeway applied to time-based claims.
const DefaultClockSkew = 2 * time.Minute

// hmacService signs and verifies HS256 access tokens.
type hmacService struct {
	key      []byte
	lifetime time.Duration
	now      func() time.Time
	leeway   time.Duration
}

// tokenClaims is the wire shape of an access token.
type tokenClaims struct {
	UserID    uuid.UUID `json:"uid"`
	TokenType string    `json:"type"`
	jwt.RegisteredClaims
}

var _ JWTService = (*hmacService)(nil)

// NewJWTService returns an HS256 JWTService keyed by cfg.JWTSecret.
func NewJWTService(cfg config.AuthConfig) (JWTService, error) {
	return NewJWTServiceWithClock(cfg, time.Now)
}

// NewJWTServiceWithClock is NewJWTService with an injected clock.
func NewJWTServiceWithClock(cfg config.AuthConfig, now func() time.Time) (JWTService, error) {
	if len(cfg.JWTSecret) < MinSecretLength {
		return nil, ErrWeakSecret
	}
	if now == nil {
		now = time.Now
	}
	return &hmacService{
		key:      []byte(cfg.JWTSecret),
		lifetime: time.Duration(cfg.TokenLifetimeMinutes) * time.Minute,
		now:      now,
		leeway:   DefaultClockSkew,
	}, nil
}

func (s *hmacService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	issued := s.now()
	claims := tokenClaims{
		UserID:    userID,
		TokenType: AccessTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(s.lifetime)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		logger.FromContext(ctx).Error("failed to sign access token",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

// ValidateToken accepts only unexpired HS256 access tokens that name a user.
func (s *hmacService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	log := logger.FromContext(ctx)
	now := s.now()

	var claims tokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(s.leeway),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		reason := classifyParseError(err)
		log.Debug("access token rejected",
			slog.String("error", err.Error()),
			slog.String("reason", reason.Error()))
		return nil, reason
	}

	switch {
	case !token.Valid:
		return nil, ErrInvalidToken
	case claims.TokenType != AccessTokenType:
		log.Debug("access token rejected",
			slog.String("reason", ErrWrongTokenType.Error()),
			slog.String("token_type", claims.TokenType))
		return nil, ErrWrongTokenType
	case claims.UserID == uuid.Nil:
		log.Debug("access token rejected", slog.String("reason", "missing user id"))
		return nil, ErrInvalidToken
	}

	log.Debug("access token validated",
		slog.String("user_id", claims.UserID.String()),
		slog.String("token_id", claims.ID))
	return claims.export(), nil
}

func (s *hmacService) keyFunc(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return s.key, nil
}

func (c *tokenClaims) export() *Claims {
	out := &Claims{
		UserID:    c.UserID,
		TokenType: c.TokenType,
		Subject:   c.Subject,
		ID:        c.ID,
	}
	if c.IssuedAt != nil {
		out.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		out.ExpiresAt = c.ExpiresAt.Time
	}
	return out
}

func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpiredToken
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return ErrTokenNotYetValid
	default:
		return ErrInvalidToken
	}
}
