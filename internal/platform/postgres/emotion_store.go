package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/attune-api/internal/domain"
	"github.com/phrazzld/attune-api/internal/platform/logger"
	"github.com/phrazzld/attune-api/internal/store"
)

// PostgresEmotionStore implements the store.EmotionStore interface
// using a PostgreSQL database as the storage backend.
type PostgresEmotionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresEmotionStore creates a new PostgreSQL implementation of the EmotionStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresEmotionStore(db store.DBTX, logger *slog.Logger) *PostgresEmotionStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresEmotionStore{
		db:     db,
		logger: logger.With(slog.String("component", "emotion_store")),
	}
}

// Ensure PostgresEmotionStore implements store.EmotionStore interface
var _ store.EmotionStore = (*PostgresEmotionStore)(nil)

// WithTx implements store.EmotionStore.WithTx
func (s *PostgresEmotionStore) WithTx(tx *sql.Tx) store.EmotionStore {
	return &PostgresEmotionStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.EmotionStore.Create
// The triggers value is stored as JSONB in its original shape.
func (s *PostgresEmotionStore) Create(ctx context.Context, event *domain.EmotionEvent) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := event.Validate(); err != nil {
		log.Warn("emotion event validation failed during create",
			slog.String("error", err.Error()),
			slog.String("event_id", event.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	triggers, err := encodeTriggers(event.Triggers)
	if err != nil {
		return fmt.Errorf("%w: encode triggers: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO emotion_events (id, user_id, occurred_at, emotion, intensity, triggers, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		event.ID,
		event.UserID,
		event.Timestamp.UTC(),
		event.Emotion,
		event.Intensity,
		triggers,
		event.Notes,
	)
	if err != nil {
		log.Error("failed to create emotion event",
			slog.String("error", err.Error()),
			slog.String("event_id", event.ID.String()),
			slog.String("user_id", event.UserID.String()))
		return MapUniqueViolation(err, store.ErrEmotionEventExists)
	}

	log.Debug("emotion event created",
		slog.String("event_id", event.ID.String()),
		slog.String("user_id", event.UserID.String()),
		slog.String("emotion", event.Emotion))
	return nil
}

// ListByUser implements store.EmotionStore.ListByUser
func (s *PostgresEmotionStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	q store.EmotionQuery,
) ([]domain.EmotionEvent, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args := buildEmotionListQuery(userID, q)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query emotion events",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	events := make([]domain.EmotionEvent, 0)
	for rows.Next() {
		var (
			event    domain.EmotionEvent
			triggers []byte
		)
		if err := rows.Scan(
			&event.ID,
			&event.UserID,
			&event.Timestamp,
			&event.Emotion,
			&event.Intensity,
			&triggers,
			&event.Notes,
		); err != nil {
			log.Error("failed to scan emotion event",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
			return nil, MapError(err)
		}
		if len(triggers) > 0 {
			// Trigger decoding coerces malformed values instead of failing.
			_ = json.Unmarshal(triggers, &event.Triggers)
		}
		event.Timestamp = event.Timestamp.UTC()
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating emotion events",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}

	log.Debug("emotion events listed",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(events)))
	return events, nil
}

// buildEmotionListQuery builds the range query with one placeholder per
// emotion filter value.
func buildEmotionListQuery(userID uuid.UUID, q store.EmotionQuery) (string, []any) {
	var b strings.Builder
	b.WriteString(`
		SELECT id, user_id, occurred_at, emotion, intensity, triggers, notes
		FROM emotion_events
		WHERE user_id = $1 AND occurred_at >= $2 AND occurred_at < $3`)

	args := []any{userID, q.Start.UTC(), q.End.UTC()}

	if len(q.Emotions) > 0 {
		placeholders := make([]string, len(q.Emotions))
		for i, emotion := range q.Emotions {
			args = append(args, emotion)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		b.WriteString(" AND emotion IN (")
		b.WriteString(strings.Join(placeholders, ", "))
		b.WriteString(")")
	}

	b.WriteString("\n\t\tORDER BY occurred_at ASC, created_at ASC")
	return b.String(), args
}

// encodeTriggers returns the JSONB value for a trigger, or nil for none.
func encodeTriggers(t domain.TriggerValue) (any, error) {
	if t.IsZero() {
		return nil, nil
	}
	data, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}
