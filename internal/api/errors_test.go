package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/attune-api/internal/api/shared"
	"github.com/phrazzld/attune-api/internal/domain"
	"github.com/phrazzld/attune-api/internal/platform/logger"
	"github.com/phrazzld/attune-api/internal/service/auth"
	"github.com/phrazzld/attune-api/internal/service/insights"
	"github.com/phrazzld/attune-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"unknown strategy", fmt.Errorf("record: %w", insights.ErrUnknownStrategy), http.StatusNotFound},
		{"preferences not found", store.ErrPreferencesNotFound, http.StatusNotFound},
		{"duplicate event", store.ErrEmotionEventExists, http.StatusConflict},
		{"invalid scope", fmt.Errorf("%w: %q", domain.ErrInvalidScope, "weekly"), http.StatusBadRequest},
		{"invalid category", domain.ErrInvalidCategory, http.StatusBadRequest},
		{"invalid complexity", domain.ErrInvalidComplexity, http.StatusBadRequest},
		{"invalid rating", domain.ErrInvalidRating, http.StatusBadRequest},
		{"invalid range", insights.ErrInvalidRange, http.StatusBadRequest},
		{"range too large", insights.ErrRangeTooLarge, http.StatusBadRequest},
		{"invalid timezone", insights.ErrInvalidTimezone, http.StatusBadRequest},
		{"validation error", domain.NewValidationError("limit", "must be an integer", nil), http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"empty body", shared.ErrEmptyBody, http.StatusBadRequest},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "An unexpected error occurred"},
		{"expired token", auth.ErrExpiredToken, "Token expired"},
		{"unknown strategy", insights.ErrUnknownStrategy, "Strategy not found"},
		{"invalid complexity", domain.ErrInvalidComplexity, "Invalid strategy complexity: must be one of simple, moderate, advanced"},
		{"validation error", domain.NewValidationError("startDate", "must be an RFC 3339 timestamp or YYYY-MM-DD date", nil), "startDate must be an RFC 3339 timestamp or YYYY-MM-DD date"},
		{"sql leak", errors.New("pq: relation \"emotion_events\" does not exist"), "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	v := validator.New()
	err := v.Struct(FeedbackRequest{StrategyID: "box-breathing", Effectiveness: 9})
	require.Error(t, err)
	assert.Equal(t, "Invalid Effectiveness: too large", SanitizeValidationError(err))

	err = v.Struct(FeedbackRequest{Effectiveness: 3})
	require.Error(t, err)
	assert.Equal(t, "Invalid StrategyID: required field", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("boom")))
}

func TestHandleAPIError(t *testing.T) {
	t.Parallel()

	ctx, logBuf := logger.TestContext(t)

	tests := []struct {
		name       string
		err        error
		defaultMsg string
		wantStatus int
		wantMsg    string
	}{
		{"bad request keeps safe message", insights.ErrInvalidRange, "Failed", http.StatusBadRequest, "Start date must be before end date"},
		{"server error uses default", errors.New("password=hunter2 dial failed"), "Failed to analyze patterns", http.StatusInternalServerError, "Failed to analyze patterns"},
		{"server error without default", errors.New("boom"), "", http.StatusInternalServerError, "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/emotions/patterns", nil).WithContext(ctx)

			HandleAPIError(rec, req, tt.err, tt.defaultMsg)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body shared.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMsg, body.Error)
		})
	}

	assert.NotContains(t, logBuf.String(), "hunter2")
}
