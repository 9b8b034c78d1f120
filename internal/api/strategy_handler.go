package api

import (
	"net/http"

	"github.com/phrazzld/attune-api/internal/api/shared"
	"github.com/phrazzld/attune-api/internal/domain"
	"github.com/phrazzld/attune-api/internal/domain/recommend"
	"github.com/phrazzld/attune-api/internal/service/insights"
)

// StrategyHandler handles the strategy catalog, recommendations,
// preferences and feedback.
type StrategyHandler struct {
	service  insights.Service
	maxLimit int
}

// NewStrategyHandler creates a new StrategyHandler. maxLimit bounds the
// limit query parameter; values below 1 use recommend.MaxLimit.
func NewStrategyHandler(service insights.Service, maxLimit int) *StrategyHandler {
	if service == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("insights service cannot be nil")
	}
	if maxLimit < 1 {
		maxLimit = recommend.MaxLimit
	}
	return &StrategyHandler{service: service, maxLimit: maxLimit}
}

// ListStrategies handles GET /api/strategies requests.
func (h *StrategyHandler) ListStrategies(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	strategies := h.service.ListStrategies(r.Context())
	shared.RespondWithJSON(w, r, http.StatusOK, StrategyListResponse{
		Strategies: strategies,
		Total:      len(strategies),
	})
}

// GetRecommendations handles GET /api/strategies/recommendations requests.
//
// Query parameters: emotion, categories (comma separated), complexity and
// limit.
func (h *StrategyHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	limit, err := parseIntParam(r, "limit", 1, h.maxLimit)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	req := recommend.Request{
		Emotion: r.URL.Query().Get("emotion"),
		Limit:   limit,
	}

	for _, raw := range parseListParam(r, "categories") {
		c, err := domain.ParseCategory(raw)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		req.Categories = append(req.Categories, c)
	}

	if raw := r.URL.Query().Get("complexity"); raw != "" {
		c, err := domain.ParseComplexity(raw)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		req.Complexity = c
	}

	recs, err := h.service.RecommendStrategies(r.Context(), userID, req)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get recommendations")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, RecommendationsResponse{
		Recommendations: recs,
		Total:           len(recs),
	})
}

// GetPreferences handles GET /api/strategies/preferences requests.
func (h *StrategyHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	prefs, err := h.service.GetPreferences(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get preferences")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, prefs)
}

// UpdatePreferences handles PUT /api/strategies/preferences requests.
func (h *StrategyHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req PreferencesRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	prefs, err := h.service.UpdatePreferences(r.Context(), userID, req.toPreferences())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update preferences")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, prefs)
}

// RecordFeedback handles POST /api/strategies/feedback requests.
func (h *StrategyHandler) RecordFeedback(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req FeedbackRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	fb, err := h.service.RecordFeedback(r.Context(), userID, insights.FeedbackInput{
		StrategyID:    req.StrategyID,
		Effectiveness: req.Effectiveness,
		Emotion:       req.Emotion,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to record feedback")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, fb)
}
