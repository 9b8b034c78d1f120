package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/attune-api/internal/domain"
)

// FeedbackStore defines the interface for the append-only strategy feedback log.
type FeedbackStore interface {
	// Create appends a feedback record.
	Create(ctx context.Context, fb *domain.StrategyFeedback) error

	// ListByUser returns all feedback a user has given, oldest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.StrategyFeedback, error)

	// WithTx returns a new FeedbackStore that uses the provided transaction.
	WithTx(tx *sql.Tx) FeedbackStore
}

// PreferencesStore defines the interface for per-user strategy preferences.
type PreferencesStore interface {
	// Get returns the stored preferences for a user.
	// Returns ErrPreferencesNotFound if the user never saved any.
	Get(ctx context.Context, userID uuid.UUID) (*domain.UserPreferences, error)

	// Upsert replaces the user's preferences.
	Upsert(ctx context.Context, prefs *domain.UserPreferences) error

	// WithTx returns a new PreferencesStore that uses the provided transaction.
	WithTx(tx *sql.Tx) PreferencesStore
}
