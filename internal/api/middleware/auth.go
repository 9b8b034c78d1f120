// Package middleware holds the HTTP middleware for request tracing and
// bearer-token authentication.
package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/attune-api/internal/api/shared"
	"github.com/phrazzld/attune-api/internal/platform/logger"
	"github.com/phrazzld/attune-api/internal/redact"
	"github.com/phrazzld/attune-api/internal/service/auth"
)

// AuthMiddleware admits requests carrying a valid access token.
type AuthMiddleware struct {
	tokens auth.JWTService
}

// NewAuthMiddleware panics when tokens is nil.
func NewAuthMiddleware(tokens auth.JWTService) *AuthMiddleware {
	if tokens == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("middleware: nil JWTService")
	}
	return &AuthMiddleware{tokens: tokens}
}

// Authenticate rejects the request with 401 unless its bearer token
// validates. Admitted requests carry the user ID and a user-scoped logger.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, problem := bearerToken(r.Header.Get("Authorization"))
		if problem != "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, problem)
			return
		}

		claims, err := m.tokens.ValidateToken(r.Context(), token)
		if err != nil {
			status, msg := tokenRejection(err)
			if status == http.StatusInternalServerError {
				logger.FromContext(r.Context()).Error("failed to validate token",
					slog.String("error", redact.Error(err)))
			}
			shared.RespondWithError(w, r, status, msg)
			return
		}

		ctx := shared.WithUserID(r.Context(), claims.UserID)
		ctx = logger.WithLogger(ctx,
			logger.FromContext(ctx).With(slog.String("user_id", claims.UserID.String())))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken extracts the token from an Authorization header value. The
// second result is the client-facing problem, empty on success.
func bearerToken(header string) (string, string) {
	if header == "" {
		return "", "Authorization header required"
	}
	scheme, token, found := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", "Invalid authorization format"
	}
	return token, ""
}

func tokenRejection(err error) (int, string) {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return http.StatusUnauthorized, "Token expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType):
		return http.StatusUnauthorized, "Invalid token"
	default:
		return http.StatusInternalServerError, "Authentication error"
	}
}

// GetUserID returns the user admitted by Authenticate.
func GetUserID(r *http.Request) (uuid.UUID, bool) {
	return shared.UserID(r.Context())
}
