package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/attune-api/internal/domain"
	"github.com/phrazzld/attune-api/internal/platform/logger"
	"github.com/phrazzld/attune-api/internal/store"
)

// PostgresFeedbackStore implements the store.FeedbackStore interface
// using a PostgreSQL database as the storage backend.
type PostgresFeedbackStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresFeedbackStore creates a new PostgreSQL implementation of the FeedbackStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresFeedbackStore(db store.DBTX, logger *slog.Logger) *PostgresFeedbackStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresFeedbackStore{
		db:     db,
		logger: logger.With(slog.String("component", "feedback_store")),
	}
}

// Ensure PostgresFeedbackStore implements store.FeedbackStore interface
var _ store.FeedbackStore = (*PostgresFeedbackStore)(nil)

// WithTx implements store.FeedbackStore.WithTx
func (s *PostgresFeedbackStore) WithTx(tx *sql.Tx) store.FeedbackStore {
	return &PostgresFeedbackStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.FeedbackStore.Create
func (s *PostgresFeedbackStore) Create(ctx context.Context, fb *domain.StrategyFeedback) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := fb.Validate(); err != nil {
		log.Warn("strategy feedback validation failed during create",
			slog.String("error", err.Error()),
			slog.String("strategy_id", fb.StrategyID))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO strategy_feedback (id, user_id, strategy_id, effectiveness, emotion, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		fb.ID,
		fb.UserID,
		fb.StrategyID,
		fb.Effectiveness,
		fb.Emotion,
		fb.Timestamp.UTC(),
	)
	if err != nil {
		log.Error("failed to create strategy feedback",
			slog.String("error", err.Error()),
			slog.String("feedback_id", fb.ID.String()),
			slog.String("user_id", fb.UserID.String()))
		return MapUniqueViolation(err, store.ErrFeedbackExists)
	}

	log.Debug("strategy feedback recorded",
		slog.String("feedback_id", fb.ID.String()),
		slog.String("strategy_id", fb.StrategyID),
		slog.Int("effectiveness", fb.Effectiveness))
	return nil
}

// ListByUser implements store.FeedbackStore.ListByUser
func (s *PostgresFeedbackStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.StrategyFeedback, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, strategy_id, effectiveness, emotion, created_at
		FROM strategy_feedback
		WHERE user_id = $1
		ORDER BY created_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to query strategy feedback",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	feedback := make([]domain.StrategyFeedback, 0)
	for rows.Next() {
		var fb domain.StrategyFeedback
		if err := rows.Scan(
			&fb.ID,
			&fb.UserID,
			&fb.StrategyID,
			&fb.Effectiveness,
			&fb.Emotion,
			&fb.Timestamp,
		); err != nil {
			log.Error("failed to scan strategy feedback",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
			return nil, MapError(err)
		}
		fb.Timestamp = fb.Timestamp.UTC()
		feedback = append(feedback, fb)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return feedback, nil
}
