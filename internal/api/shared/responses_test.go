package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/attune-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		data         interface{}
		expectedBody string
	}{
		{"object", http.StatusOK, map[string]interface{}{"message": "success", "data": 123}, `{"data":123,"message":"success"}`},
		{"empty object", http.StatusCreated, map[string]interface{}{}, `{}`},
		{"nil", http.StatusOK, nil, `null`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			rr := httptest.NewRecorder()

			RespondWithJSON(rr, req, tc.status, tc.data)

			assert.Equal(t, tc.status, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func TestRespondWithJSON_EncodingError(t *testing.T) {
	ctx, logBuf := logger.TestContext(t)
	req := httptest.NewRequest(http.MethodGet, "/test", nil).WithContext(ctx)
	rr := httptest.NewRecorder()

	RespondWithJSON(rr, req, http.StatusOK, map[string]interface{}{"bad": make(chan int)})

	assert.Equal(t, http.StatusOK, rr.Code)
	logger.AssertLogContains(t, logBuf, "failed to encode JSON response")
}

func TestRespondWithError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req = req.WithContext(WithTraceID(req.Context(), "trace-123"))
	rr := httptest.NewRecorder()

	RespondWithError(rr, req, http.StatusBadRequest, "Invalid request")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "Invalid request", resp.Error)
	assert.Equal(t, "trace-123", resp.TraceID)
	assert.Zero(t, resp.Code)
}

func TestRespondWithErrorAndLog(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		opts      []ResponseOption
		wantLevel string
	}{
		{"server error", http.StatusInternalServerError, nil, "ERROR"},
		{"rate limited", http.StatusTooManyRequests, nil, "WARN"},
		{"bad request", http.StatusBadRequest, nil, "DEBUG"},
		{"elevated unauthorized", http.StatusUnauthorized, []ResponseOption{WithElevatedLogLevel()}, "WARN"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx, logBuf := logger.TestContext(t)
			req := httptest.NewRequest(http.MethodGet, "/api/emotions/patterns", nil).WithContext(ctx)
			rr := httptest.NewRecorder()

			err := errors.New("dial postgres://attune:hunter22@db:5432/attune failed")
			RespondWithErrorAndLog(rr, req, tc.status, "Something went wrong", err, tc.opts...)

			assert.Equal(t, tc.status, rr.Code)
			assert.NotContains(t, rr.Body.String(), "postgres")

			entries, parseErr := logBuf.Entries()
			require.NoError(t, parseErr)
			require.Len(t, entries, 1)
			assert.Equal(t, tc.wantLevel, entries[0]["level"])
			assert.Equal(t, "API error response", entries[0]["msg"])
			assert.NotContains(t, entries[0]["error"], "hunter22")
			assert.Equal(t, "*errors.errorString", entries[0]["error_type"])
		})
	}
}
