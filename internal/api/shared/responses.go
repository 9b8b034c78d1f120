package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/attune-api/internal/platform/logger"
	"github.com/phrazzld/attune-api/internal/redact"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"-"`
	TraceID string `json:"trace_id,omitempty"`
}

// ResponseOption adjusts how RespondWithErrorAndLog logs.
type ResponseOption func(*errorLogging)

type errorLogging struct {
	elevate bool
}

// WithElevatedLogLevel logs a 4xx response at WARN rather than DEBUG.
func WithElevatedLogLevel() ResponseOption {
	return func(l *errorLogging) { l.elevate = true }
}

// RespondWithJSON encodes data as the response body with the given status.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode JSON response", redact.Attr(err))
	}
}

// RespondWithError writes an ErrorResponse stamped with the request's trace ID.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	logger.FromContext(r.Context()).Debug("sending error response",
		slog.Int("status_code", status),
		slog.String("message", message),
		slog.String("path", r.URL.Path))
	writeError(w, r, status, message)
}

// RespondWithErrorAndLog writes userMessage to the client and logs err in
// redacted form. Server errors log at ERROR, 429 at WARN, and everything
// else at DEBUG unless elevated.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	err error,
	opts ...ResponseOption,
) {
	var cfg errorLogging
	for _, opt := range opts {
		opt(&cfg)
	}

	attrs := []slog.Attr{
		slog.String("trace_id", GetTraceID(r.Context())),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status_code", status),
		slog.String("user_message", userMessage),
	}
	if err != nil {
		attrs = append(attrs, redact.Attr(err), slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	ctx := r.Context()
	logger.FromContext(ctx).LogAttrs(ctx, errorLevel(status, cfg.elevate), "API error response", attrs...)
	writeError(w, r, status, userMessage)
}

func errorLevel(status int, elevate bool) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status == http.StatusTooManyRequests, elevate && status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelDebug
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	RespondWithJSON(w, r, status, ErrorResponse{
		Error:   message,
		Code:    status,
		TraceID: GetTraceID(r.Context()),
	})
}
