package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/attune-api/internal/api/shared"
	"github.com/phrazzld/attune-api/internal/domain"
	"github.com/phrazzld/attune-api/internal/platform/logger"
)

// dateOnly is the short date form accepted alongside RFC 3339.
const dateOnly = "2006-01-02"

// getUserIDFromContext extracts the authenticated user's UUID from the request context.
// The user ID is expected to be placed in the context by the authentication middleware.
func getUserIDFromContext(r *http.Request) (uuid.UUID, bool) {
	return shared.UserID(r.Context())
}

// requireUser returns the authenticated user ID, or writes a 401 response
// and returns false.
func requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		logger.FromContext(r.Context()).Warn("user ID not found or invalid in request context",
			slog.String("path", r.URL.Path))
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return uuid.Nil, false
	}
	return userID, true
}

// parseTimeParam parses an RFC 3339 timestamp or a YYYY-MM-DD date (taken as
// UTC midnight). An absent parameter yields the zero time.
func parseTimeParam(r *http.Request, name string) (time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(dateOnly, raw); err == nil {
		return t, nil
	}
	return time.Time{}, domain.NewValidationError(name, "must be an RFC 3339 timestamp or YYYY-MM-DD date", domain.ErrValidation)
}

// parseListParam splits a comma-separated parameter, dropping blanks.
func parseListParam(r *http.Request, name string) []string {
	raw := r.URL.Query().Get(name)
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseIntParam parses an integer parameter within [lo, hi]. An absent
// parameter yields 0.
func parseIntParam(r *http.Request, name string, lo, hi int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(name, "must be an integer", domain.ErrValidation)
	}
	if n < lo || n > hi {
		return 0, domain.NewValidationError(name, "must be between "+strconv.Itoa(lo)+" and "+strconv.Itoa(hi), domain.ErrValidation)
	}
	return n, nil
}

// decodeAndValidate decodes the JSON body into req and validates it,
// writing a 400 response and returning false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := shared.DecodeJSON(r, req); err != nil {
		msg := "Invalid request format"
		if errors.Is(err, shared.ErrEmptyBody) {
			msg = GetSafeErrorMessage(err)
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msg, err)
		return false
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return false
	}
	return true
}
