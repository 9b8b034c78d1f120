package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/attune-api/internal/domain"
	"github.com/phrazzld/attune-api/internal/platform/logger"
	"github.com/phrazzld/attune-api/internal/store"
)

// PostgresPreferencesStore implements the store.PreferencesStore interface
// using a PostgreSQL database as the storage backend.
type PostgresPreferencesStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPreferencesStore creates a new PostgreSQL implementation of the PreferencesStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresPreferencesStore(db store.DBTX, logger *slog.Logger) *PostgresPreferencesStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPreferencesStore{
		db:     db,
		logger: logger.With(slog.String("component", "preferences_store")),
	}
}

// Ensure PostgresPreferencesStore implements store.PreferencesStore interface
var _ store.PreferencesStore = (*PostgresPreferencesStore)(nil)

// WithTx implements store.PreferencesStore.WithTx
func (s *PostgresPreferencesStore) WithTx(tx *sql.Tx) store.PreferencesStore {
	return &PostgresPreferencesStore{
		db:     tx,
		logger: s.logger,
	}
}

// Get implements store.PreferencesStore.Get
// Stored values are returned as saved; callers normalize them.
func (s *PostgresPreferencesStore) Get(ctx context.Context, userID uuid.UUID) (*domain.UserPreferences, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT user_id, preferred_strategy_types, strategy_complexity,
		       auto_suggest_enabled, favorite_strategies, updated_at
		FROM strategy_preferences
		WHERE user_id = $1
	`

	var (
		prefs      domain.UserPreferences
		types      []byte
		complexity string
		favorites  []byte
	)
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&prefs.UserID,
		&types,
		&complexity,
		&prefs.AutoSuggestEnabled,
		&favorites,
		&prefs.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("no stored preferences", slog.String("user_id", userID.String()))
			return nil, store.ErrPreferencesNotFound
		}
		log.Error("failed to get preferences",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}

	prefs.StrategyComplexity = domain.Complexity(complexity)
	prefs.UpdatedAt = prefs.UpdatedAt.UTC()

	// Unreadable JSON falls back to empty lists, which normalize to defaults.
	if err := json.Unmarshal(types, &prefs.PreferredStrategyTypes); err != nil {
		log.Warn("stored strategy types are not valid JSON",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		prefs.PreferredStrategyTypes = nil
	}
	if err := json.Unmarshal(favorites, &prefs.FavoriteStrategies); err != nil {
		log.Warn("stored favorite strategies are not valid JSON",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		prefs.FavoriteStrategies = nil
	}

	return &prefs, nil
}

// Upsert implements store.PreferencesStore.Upsert
// UpdatedAt is set to the current time when it is zero.
func (s *PostgresPreferencesStore) Upsert(ctx context.Context, prefs *domain.UserPreferences) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if prefs.UserID == uuid.Nil {
		return fmt.Errorf("%w: preferences user ID cannot be empty", store.ErrInvalidEntity)
	}
	if prefs.UpdatedAt.IsZero() {
		prefs.UpdatedAt = time.Now().UTC()
	}

	types, err := json.Marshal(nonNil(prefs.PreferredStrategyTypes))
	if err != nil {
		return fmt.Errorf("%w: encode strategy types: %w", store.ErrInvalidEntity, err)
	}
	favorites, err := json.Marshal(nonNil(prefs.FavoriteStrategies))
	if err != nil {
		return fmt.Errorf("%w: encode favorite strategies: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO strategy_preferences (
			user_id, preferred_strategy_types, strategy_complexity,
			auto_suggest_enabled, favorite_strategies, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			preferred_strategy_types = EXCLUDED.preferred_strategy_types,
			strategy_complexity      = EXCLUDED.strategy_complexity,
			auto_suggest_enabled     = EXCLUDED.auto_suggest_enabled,
			favorite_strategies      = EXCLUDED.favorite_strategies,
			updated_at               = EXCLUDED.updated_at
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		prefs.UserID,
		string(types),
		string(prefs.StrategyComplexity),
		prefs.AutoSuggestEnabled,
		string(favorites),
		prefs.UpdatedAt.UTC(),
	)
	if err != nil {
		log.Error("failed to upsert preferences",
			slog.String("error", err.Error()),
			slog.String("user_id", prefs.UserID.String()))
		return MapError(err)
	}

	log.Debug("preferences saved", slog.String("user_id", prefs.UserID.String()))
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
