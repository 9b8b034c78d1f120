// Package shared holds the request context keys, request decoding and
// response writing used by the handlers and middleware.
package shared

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

type contextKey int

const (
	userIDKey contextKey = iota
	traceIDKey
)

// traceIDBytes is the raw size of a trace ID; it renders as 32 hex characters.
const traceIDBytes = 16

// SetTraceID returns ctx carrying a freshly generated trace ID.
func SetTraceID(ctx context.Context) context.Context {
	return WithTraceID(ctx, newTraceID())
}

// WithTraceID returns ctx carrying traceID.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// GetTraceID returns the request's trace ID, or "" outside a traced request.
func GetTraceID(ctx context.Context) string {
	id, _ := ctx.Value(traceIDKey).(string)
	return id
}

// WithUserID stores the authenticated user's ID in the context.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserID returns the authenticated user's ID. The second result is false
// when the context carries no user or the nil UUID.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

// newTraceID renders a random v4 UUID as bare hex. When the random source
// fails it derives an ID from the clock instead.
func newTraceID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		slog.Error("failed to generate random trace ID, using clock", slog.Any("error", err))
		return clockTraceID(time.Now())
	}
	return hex.EncodeToString(id[:])
}

func clockTraceID(now time.Time) string {
	var b [traceIDBytes]byte
	binary.BigEndian.PutUint64(b[:8], uint64(now.UnixNano()))
	binary.BigEndian.PutUint64(b[8:], uint64(now.Unix())<<32|uint64(now.Nanosecond()))
	return hex.EncodeToString(b[:])
}
