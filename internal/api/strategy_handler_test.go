package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/attune-api/internal/api/shared"
	"github.com/phrazzld/attune-api/internal/domain"
	"github.com/phrazzld/attune-api/internal/domain/recommend"
	"github.com/phrazzld/attune-api/internal/mocks"
	"github.com/phrazzld/attune-api/internal/service/insights"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrategyHandler_ListStrategies(t *testing.T) {
	t.Parallel()

	catalog := recommend.DefaultCatalog()
	svc := &mocks.MockInsightsService{
		ListStrategiesFn: func(ctx context.Context) []domain.RegulationStrategy {
			return catalog.Strategies()
		},
	}
	h := NewStrategyHandler(svc, 0)

	rec := httptest.NewRecorder()
	h.ListStrategies(rec, authedRequest(http.MethodGet, "/api/strategies", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp StrategyListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, catalog.Len(), resp.Total)
	assert.Len(t, resp.Strategies, catalog.Len())
}

func TestStrategyHandler_GetRecommendations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedErrMsg string
		expectedReq    *recommend.Request
	}{
		{
			name:           "no parameters",
			expectedStatus: http.StatusOK,
			expectedReq:    &recommend.Request{},
		},
		{
			name:           "all parameters",
			query:          "?emotion=Anxious&categories=physical,%20Mindfulness&complexity=simple&limit=3",
			expectedStatus: http.StatusOK,
			expectedReq: &recommend.Request{
				Emotion:    "Anxious",
				Categories: []domain.Category{domain.CategoryPhysical, domain.CategoryMindfulness},
				Complexity: domain.ComplexitySimple,
				Limit:      3,
			},
		},
		{
			name:           "limit above max",
			query:          "?limit=21",
			expectedStatus: http.StatusBadRequest,
			expectedErrMsg: "limit must be between 1 and 20",
		},
		{
			name:           "limit zero",
			query:          "?limit=0",
			expectedStatus: http.StatusBadRequest,
			expectedErrMsg: "limit must be between 1 and 20",
		},
		{
			name:           "unknown category",
			query:          "?categories=music",
			expectedStatus: http.StatusBadRequest,
			expectedErrMsg: "Invalid strategy category",
		},
		{
			name:           "unknown complexity",
			query:          "?complexity=extreme",
			expectedStatus: http.StatusBadRequest,
			expectedErrMsg: "Invalid strategy complexity: must be one of simple, moderate, advanced",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *recommend.Request
			svc := &mocks.MockInsightsService{
				RecommendStrategiesFn: func(ctx context.Context, userID uuid.UUID, req recommend.Request) ([]recommend.Recommendation, error) {
					got = &req
					return []recommend.Recommendation{{ID: "box-breathing", Suitability: 80, Score: 72.5}}, nil
				},
			}
			h := NewStrategyHandler(svc, recommend.MaxLimit)

			rec := httptest.NewRecorder()
			h.GetRecommendations(rec, authedRequest(http.MethodGet, "/api/strategies/recommendations"+tt.query, nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedErrMsg != "" {
				var errResp shared.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
				assert.Equal(t, tt.expectedErrMsg, errResp.Error)
				assert.Nil(t, got)
				return
			}

			require.NotNil(t, got)
			assert.Equal(t, *tt.expectedReq, *got)

			var resp RecommendationsResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, 1, resp.Total)
			assert.Equal(t, "box-breathing", resp.Recommendations[0].ID)
		})
	}
}

func TestStrategyHandler_Preferences(t *testing.T) {
	t.Parallel()

	var stored *domain.UserPreferences
	svc := &mocks.MockInsightsService{
		GetPreferencesFn: func(ctx context.Context, userID uuid.UUID) (*domain.UserPreferences, error) {
			if stored == nil {
				p := domain.DefaultPreferences(userID)
				return &p, nil
			}
			return stored, nil
		},
		UpdatePreferencesFn: func(ctx context.Context, userID uuid.UUID, prefs domain.UserPreferences) (*domain.UserPreferences, error) {
			for _, id := range prefs.FavoriteStrategies {
				if id == "missing" {
					return nil, insights.ErrUnknownStrategy
				}
			}
			prefs.UserID = userID
			stored = &prefs
			return stored, nil
		},
	}
	h := NewStrategyHandler(svc, 0)

	rec := httptest.NewRecorder()
	h.GetPreferences(rec, authedRequest(http.MethodGet, "/api/strategies/preferences", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var prefs domain.UserPreferences
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &prefs))
	assert.Equal(t, domain.ComplexityModerate, prefs.StrategyComplexity)
	assert.True(t, prefs.AutoSuggestEnabled)

	rec = httptest.NewRecorder()
	h.UpdatePreferences(rec, authedRequest(http.MethodPut, "/api/strategies/preferences",
		`{"preferred_strategy_types":["creative"],"strategy_complexity":"simple","auto_suggest_enabled":false,"favorite_strategies":["expressive-writing"]}`))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, stored)
	assert.Equal(t, []domain.Category{domain.CategoryCreative}, stored.PreferredStrategyTypes)
	assert.Equal(t, domain.ComplexitySimple, stored.StrategyComplexity)
	assert.False(t, stored.AutoSuggestEnabled)
	assert.Equal(t, fixedUserID, stored.UserID)

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedErrMsg string
	}{
		{"unknown category", `{"preferred_strategy_types":["music"],"strategy_complexity":"simple","auto_suggest_enabled":true}`, http.StatusBadRequest, "Invalid PreferredStrategyTypes[0]: invalid value"},
		{"missing auto suggest", `{"preferred_strategy_types":["social"],"strategy_complexity":"simple"}`, http.StatusBadRequest, "Invalid AutoSuggestEnabled: required field"},
		{"unknown favorite", `{"preferred_strategy_types":["social"],"strategy_complexity":"simple","auto_suggest_enabled":true,"favorite_strategies":["missing"]}`, http.StatusNotFound, "Strategy not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.UpdatePreferences(rec, authedRequest(http.MethodPut, "/api/strategies/preferences", tt.body))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			var errResp shared.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
			assert.Equal(t, tt.expectedErrMsg, errResp.Error)
		})
	}
}

func TestStrategyHandler_RecordFeedback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedErrMsg string
	}{
		{"valid", `{"strategy_id":"box-breathing","effectiveness":5,"emotion":"Anxious"}`, http.StatusCreated, ""},
		{"rating too low", `{"strategy_id":"box-breathing","effectiveness":0}`, http.StatusBadRequest, "Invalid Effectiveness: too small"},
		{"unknown strategy", `{"strategy_id":"missing","effectiveness":3}`, http.StatusNotFound, "Strategy not found"},
		{"empty body", ``, http.StatusBadRequest, "Request body is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mocks.MockInsightsService{
				RecordFeedbackFn: func(ctx context.Context, userID uuid.UUID, in insights.FeedbackInput) (*domain.StrategyFeedback, error) {
					if in.StrategyID == "missing" {
						return nil, insights.ErrUnknownStrategy
					}
					return &domain.StrategyFeedback{
						ID: uuid.New(), UserID: userID, StrategyID: in.StrategyID,
						Effectiveness: in.Effectiveness, Emotion: in.Emotion, Timestamp: fixedTime,
					}, nil
				},
			}
			h := NewStrategyHandler(svc, 0)

			rec := httptest.NewRecorder()
			h.RecordFeedback(rec, authedRequest(http.MethodPost, "/api/strategies/feedback", tt.body))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedErrMsg != "" {
				var errResp shared.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
				assert.Equal(t, tt.expectedErrMsg, errResp.Error)
				return
			}
			var fb domain.StrategyFeedback
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fb))
			assert.Equal(t, "box-breathing", fb.StrategyID)
			assert.Equal(t, 5, fb.Effectiveness)
		})
	}
}

func TestStrategyHandler_RequiresUser(t *testing.T) {
	t.Parallel()

	h := NewStrategyHandler(&mocks.MockInsightsService{}, 0)
	handlers := map[string]http.HandlerFunc{
		"list":        h.ListStrategies,
		"recommend":   h.GetRecommendations,
		"preferences": h.GetPreferences,
		"feedback":    h.RecordFeedback,
	}
	for name, fn := range handlers {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			fn(rec, httptest.NewRequest(http.MethodGet, "/api/strategies", nil))
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}
