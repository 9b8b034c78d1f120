package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/attune-api/internal/domain"
)

// EmotionQuery scopes an event or journal listing to a time range. Start is
// inclusive and End exclusive. Emotions, when non-empty, keeps only events
// whose label is in the list.
type EmotionQuery struct {
	Start    time.Time
	End      time.Time
	Emotions []string
}

// EmotionStore defines the interface for emotion event persistence.
type EmotionStore interface {
	// Create saves a new emotion event.
	// Returns ErrInvalidEntity if the event fails validation and
	// ErrEmotionEventExists if the ID is taken.
	Create(ctx context.Context, event *domain.EmotionEvent) error

	// ListByUser returns a user's events within the query range, ordered by
	// time ascending. Returns an empty slice when nothing matches.
	ListByUser(ctx context.Context, userID uuid.UUID, q EmotionQuery) ([]domain.EmotionEvent, error)

	// WithTx returns a new EmotionStore that uses the provided transaction.
	WithTx(tx *sql.Tx) EmotionStore
}

// JournalStore defines the interface for journal entry persistence.
type JournalStore interface {
	// Create saves a new journal entry.
	Create(ctx context.Context, entry *domain.JournalEntry) error

	// ListByUser returns a user's journal entries within the query range,
	// ordered by time ascending. The Emotions filter is ignored.
	ListByUser(ctx context.Context, userID uuid.UUID, q EmotionQuery) ([]domain.JournalEntry, error)

	// WithTx returns a new JournalStore that uses the provided transaction.
	WithTx(tx *sql.Tx) JournalStore
}
