package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/attune-api/internal/api/shared"
	"github.com/phrazzld/attune-api/internal/platform/logger"
	"github.com/phrazzld/attune-api/internal/service/insights"
)

// EmotionHandler handles emotion logging, journaling and pattern analysis.
type EmotionHandler struct {
	service insights.Service
}

// NewEmotionHandler creates a new EmotionHandler.
func NewEmotionHandler(service insights.Service) *EmotionHandler {
	if service == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("insights service cannot be nil")
	}
	return &EmotionHandler{service: service}
}

// LogEmotion handles POST /api/emotions requests.
func (h *EmotionHandler) LogEmotion(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req LogEmotionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	logged, err := h.service.LogEmotion(r.Context(), userID, insights.LogEmotionInput{
		Emotion:   req.Emotion,
		Intensity: req.Intensity,
		Triggers:  req.Triggers,
		Notes:     req.Notes,
		Journal:   req.Journal,
		Timestamp: timeOrZero(req.Timestamp),
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to log emotion")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, LogEmotionResponse{
		Event:   logged.Event,
		Journal: logged.Journal,
	})
}

// AddJournalEntry handles POST /api/journal requests.
func (h *EmotionHandler) AddJournalEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req JournalRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	entry, err := h.service.AddJournalEntry(r.Context(), userID, insights.JournalInput{
		Content:   req.Content,
		Emotion:   req.Emotion,
		Timestamp: timeOrZero(req.Timestamp),
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to add journal entry")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, entry)
}

// GetPatterns handles GET /api/emotions/patterns requests.
//
// Query parameters: analysisType, startDate, endDate, emotions (comma
// separated) and timezone (IANA name).
func (h *EmotionHandler) GetPatterns(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	start, err := parseTimeParam(r, "startDate")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	end, err := parseTimeParam(r, "endDate")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	q := r.URL.Query()
	analysis, err := h.service.AnalyzePatterns(r.Context(), userID, insights.PatternQuery{
		Scope:    q.Get("analysisType"),
		Start:    start,
		End:      end,
		Emotions: parseListParam(r, "emotions"),
		Timezone: q.Get("timezone"),
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to analyze patterns")
		return
	}

	logger.FromContext(r.Context()).Debug("pattern analysis served",
		slog.String("scope", string(analysis.Scope)),
		slog.Int("total_events", analysis.TotalEvents))
	shared.RespondWithJSON(w, r, http.StatusOK, analysis)
}
