package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/attune-api/internal/domain"
	"github.com/phrazzld/attune-api/internal/domain/patterns"
	"github.com/phrazzld/attune-api/internal/domain/recommend"
	"github.com/phrazzld/attune-api/internal/service/insights"
)

// MockInsightsService implements insights.Service for testing. Unset
// functions return zero values and a nil error.
type MockInsightsService struct {
	LogEmotionFn          func(ctx context.Context, userID uuid.UUID, in insights.LogEmotionInput) (*insights.LoggedEmotion, error)
	AddJournalEntryFn     func(ctx context.Context, userID uuid.UUID, in insights.JournalInput) (*domain.JournalEntry, error)
	AnalyzePatternsFn     func(ctx context.Context, userID uuid.UUID, q insights.PatternQuery) (*patterns.Analysis, error)
	RecommendStrategiesFn func(ctx context.Context, userID uuid.UUID, req recommend.Request) ([]recommend.Recommendation, error)
	ListStrategiesFn      func(ctx context.Context) []domain.RegulationStrategy
	GetPreferencesFn      func(ctx context.Context, userID uuid.UUID) (*domain.UserPreferences, error)
	UpdatePreferencesFn   func(ctx context.Context, userID uuid.UUID, prefs domain.UserPreferences) (*domain.UserPreferences, error)
	RecordFeedbackFn      func(ctx context.Context, userID uuid.UUID, in insights.FeedbackInput) (*domain.StrategyFeedback, error)
}

var _ insights.Service = (*MockInsightsService)(nil)

// LogEmotion implements insights.Service
func (m *MockInsightsService) LogEmotion(
	ctx context.Context,
	userID uuid.UUID,
	in insights.LogEmotionInput,
) (*insights.LoggedEmotion, error) {
	if m.LogEmotionFn != nil {
		return m.LogEmotionFn(ctx, userID, in)
	}
	return &insights.LoggedEmotion{}, nil
}

// AddJournalEntry implements insights.Service
func (m *MockInsightsService) AddJournalEntry(
	ctx context.Context,
	userID uuid.UUID,
	in insights.JournalInput,
) (*domain.JournalEntry, error) {
	if m.AddJournalEntryFn != nil {
		return m.AddJournalEntryFn(ctx, userID, in)
	}
	return &domain.JournalEntry{}, nil
}

// AnalyzePatterns implements insights.Service
func (m *MockInsightsService) AnalyzePatterns(
	ctx context.Context,
	userID uuid.UUID,
	q insights.PatternQuery,
) (*patterns.Analysis, error) {
	if m.AnalyzePatternsFn != nil {
		return m.AnalyzePatternsFn(ctx, userID, q)
	}
	analysis := patterns.Analyze(nil, nil, patterns.Options{})
	return &analysis, nil
}

// RecommendStrategies implements insights.Service
func (m *MockInsightsService) RecommendStrategies(
	ctx context.Context,
	userID uuid.UUID,
	req recommend.Request,
) ([]recommend.Recommendation, error) {
	if m.RecommendStrategiesFn != nil {
		return m.RecommendStrategiesFn(ctx, userID, req)
	}
	return []recommend.Recommendation{}, nil
}

// ListStrategies implements insights.Service
func (m *MockInsightsService) ListStrategies(ctx context.Context) []domain.RegulationStrategy {
	if m.ListStrategiesFn != nil {
		return m.ListStrategiesFn(ctx)
	}
	return []domain.RegulationStrategy{}
}

// GetPreferences implements insights.Service
func (m *MockInsightsService) GetPreferences(ctx context.Context, userID uuid.UUID) (*domain.UserPreferences, error) {
	if m.GetPreferencesFn != nil {
		return m.GetPreferencesFn(ctx, userID)
	}
	prefs := domain.DefaultPreferences(userID)
	return &prefs, nil
}

// UpdatePreferences implements insights.Service
func (m *MockInsightsService) UpdatePreferences(
	ctx context.Context,
	userID uuid.UUID,
	prefs domain.UserPreferences,
) (*domain.UserPreferences, error) {
	if m.UpdatePreferencesFn != nil {
		return m.UpdatePreferencesFn(ctx, userID, prefs)
	}
	return &prefs, nil
}

// RecordFeedback implements insights.Service
func (m *MockInsightsService) RecordFeedback(
	ctx context.Context,
	userID uuid.UUID,
	in insights.FeedbackInput,
) (*domain.StrategyFeedback, error) {
	if m.RecordFeedbackFn != nil {
		return m.RecordFeedbackFn(ctx, userID, in)
	}
	return &domain.StrategyFeedback{}, nil
}
