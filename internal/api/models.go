package api

import (
	"time"

	"github.com/phrazzld/attune-api/internal/domain"
	"github.com/phrazzld/attune-api/internal/domain/recommend"
)

// LogEmotionRequest defines the payload for logging an emotion event.
// Triggers accept either a free-form string or a list of strings.
type LogEmotionRequest struct {
	Emotion   string              `json:"emotion"             validate:"required,max=64"`
	Intensity float64             `json:"intensity"           validate:"gte=0,lte=10"`
	Triggers  domain.TriggerValue `json:"triggers"`
	Notes     string              `json:"notes,omitempty"     validate:"max=2000"`
	Journal   string              `json:"journal,omitempty"   validate:"max=10000"`
	Timestamp *time.Time          `json:"timestamp,omitempty"`
}

// LogEmotionResponse is returned after an emotion event is stored.
type LogEmotionResponse struct {
	Event   *domain.EmotionEvent `json:"event"`
	Journal *domain.JournalEntry `json:"journal,omitempty"`
}

// JournalRequest defines the payload for adding a journal entry.
type JournalRequest struct {
	Content   string     `json:"content"             validate:"required,max=10000"`
	Emotion   string     `json:"emotion,omitempty"   validate:"max=64"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// PreferencesRequest defines the payload for replacing strategy preferences.
type PreferencesRequest struct {
	PreferredStrategyTypes []string `json:"preferred_strategy_types" validate:"required,min=1,dive,oneof=physical cognitive social mindfulness creative"`
	StrategyComplexity     string   `json:"strategy_complexity"      validate:"required,oneof=simple moderate advanced"`
	AutoSuggestEnabled     *bool    `json:"auto_suggest_enabled"     validate:"required"`
	FavoriteStrategies     []string `json:"favorite_strategies"      validate:"max=50,dive,required"`
}

// FeedbackRequest defines the payload for rating a strategy.
type FeedbackRequest struct {
	StrategyID    string `json:"strategy_id"       validate:"required"`
	Effectiveness int    `json:"effectiveness"     validate:"min=1,max=5"`
	Emotion       string `json:"emotion,omitempty" validate:"max=64"`
}

// StrategyListResponse wraps the strategy catalog.
type StrategyListResponse struct {
	Strategies []domain.RegulationStrategy `json:"strategies"`
	Total      int                         `json:"total"`
}

// RecommendationsResponse wraps ranked recommendations.
type RecommendationsResponse struct {
	Recommendations []recommend.Recommendation `json:"recommendations"`
	Total           int                        `json:"total"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}

// toPreferences converts a validated request into domain preferences.
func (req PreferencesRequest) toPreferences() domain.UserPreferences {
	types := make([]domain.Category, 0, len(req.PreferredStrategyTypes))
	for _, t := range req.PreferredStrategyTypes {
		types = append(types, domain.Category(t))
	}
	favorites := req.FavoriteStrategies
	if favorites == nil {
		favorites = []string{}
	}
	return domain.UserPreferences{
		PreferredStrategyTypes: types,
		StrategyComplexity:     domain.Complexity(req.StrategyComplexity),
		AutoSuggestEnabled:     *req.AutoSuggestEnabled,
		FavoriteStrategies:     favorites,
	}
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
