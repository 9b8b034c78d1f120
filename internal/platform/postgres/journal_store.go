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

// PostgresJournalStore implements the store.JournalStore interface
// using a PostgreSQL database as the storage backend.
type PostgresJournalStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresJournalStore creates a new PostgreSQL implementation of the JournalStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresJournalStore(db store.DBTX, logger *slog.Logger) *PostgresJournalStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresJournalStore{
		db:     db,
		logger: logger.With(slog.String("component", "journal_store")),
	}
}

// Ensure PostgresJournalStore implements store.JournalStore interface
var _ store.JournalStore = (*PostgresJournalStore)(nil)

// WithTx implements store.JournalStore.WithTx
func (s *PostgresJournalStore) WithTx(tx *sql.Tx) store.JournalStore {
	return &PostgresJournalStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.JournalStore.Create
func (s *PostgresJournalStore) Create(ctx context.Context, entry *domain.JournalEntry) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := entry.Validate(); err != nil {
		log.Warn("journal entry validation failed during create",
			slog.String("error", err.Error()),
			slog.String("entry_id", entry.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO journal_entries (id, user_id, occurred_at, content, emotion)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.UserID,
		entry.Timestamp.UTC(),
		entry.Content,
		entry.Emotion,
	)
	if err != nil {
		log.Error("failed to create journal entry",
			slog.String("error", err.Error()),
			slog.String("entry_id", entry.ID.String()),
			slog.String("user_id", entry.UserID.String()))
		return MapUniqueViolation(err, store.ErrJournalEntryExists)
	}

	log.Debug("journal entry created",
		slog.String("entry_id", entry.ID.String()),
		slog.String("user_id", entry.UserID.String()))
	return nil
}

// ListByUser implements store.JournalStore.ListByUser
func (s *PostgresJournalStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	q store.EmotionQuery,
) ([]domain.JournalEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, occurred_at, content, emotion
		FROM journal_entries
		WHERE user_id = $1 AND occurred_at >= $2 AND occurred_at < $3
		ORDER BY occurred_at ASC, created_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query, userID, q.Start.UTC(), q.End.UTC())
	if err != nil {
		log.Error("failed to query journal entries",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	entries := make([]domain.JournalEntry, 0)
	for rows.Next() {
		var entry domain.JournalEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Timestamp,
			&entry.Content,
			&entry.Emotion,
		); err != nil {
			log.Error("failed to scan journal entry",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
			return nil, MapError(err)
		}
		entry.Timestamp = entry.Timestamp.UTC()
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating journal entries",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}

	return entries, nil
}
