package insights

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/attune-api/internal/domain"
	"github.com/phrazzld/attune-api/internal/store"
)

type mockEmotionStore struct {
	CreateFn     func(ctx context.Context, event *domain.EmotionEvent) error
	ListByUserFn func(ctx context.Context, userID uuid.UUID, q store.EmotionQuery) ([]domain.EmotionEvent, error)
	txCount      int
}

func (m *mockEmotionStore) Create(ctx context.Context, event *domain.EmotionEvent) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, event)
	}
	return nil
}

func (m *mockEmotionStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	q store.EmotionQuery,
) ([]domain.EmotionEvent, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID, q)
	}
	return []domain.EmotionEvent{}, nil
}

func (m *mockEmotionStore) WithTx(tx *sql.Tx) store.EmotionStore {
	m.txCount++
	return m
}

type mockJournalStore struct {
	CreateFn     func(ctx context.Context, entry *domain.JournalEntry) error
	ListByUserFn func(ctx context.Context, userID uuid.UUID, q store.EmotionQuery) ([]domain.JournalEntry, error)
	txCount      int
}

func (m *mockJournalStore) Create(ctx context.Context, entry *domain.JournalEntry) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, entry)
	}
	return nil
}

func (m *mockJournalStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	q store.EmotionQuery,
) ([]domain.JournalEntry, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID, q)
	}
	return []domain.JournalEntry{}, nil
}

func (m *mockJournalStore) WithTx(tx *sql.Tx) store.JournalStore {
	m.txCount++
	return m
}

type mockFeedbackStore struct {
	CreateFn     func(ctx context.Context, fb *domain.StrategyFeedback) error
	ListByUserFn func(ctx context.Context, userID uuid.UUID) ([]domain.StrategyFeedback, error)
}

func (m *mockFeedbackStore) Create(ctx context.Context, fb *domain.StrategyFeedback) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, fb)
	}
	return nil
}

func (m *mockFeedbackStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.StrategyFeedback, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return []domain.StrategyFeedback{}, nil
}

func (m *mockFeedbackStore) WithTx(tx *sql.Tx) store.FeedbackStore {
	return m
}

type mockPreferencesStore struct {
	GetFn    func(ctx context.Context, userID uuid.UUID) (*domain.UserPreferences, error)
	UpsertFn func(ctx context.Context, prefs *domain.UserPreferences) error
}

func (m *mockPreferencesStore) Get(ctx context.Context, userID uuid.UUID) (*domain.UserPreferences, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, userID)
	}
	return nil, store.ErrPreferencesNotFound
}

func (m *mockPreferencesStore) Upsert(ctx context.Context, prefs *domain.UserPreferences) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, prefs)
	}
	return nil
}

func (m *mockPreferencesStore) WithTx(tx *sql.Tx) store.PreferencesStore {
	return m
}
