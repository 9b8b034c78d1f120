package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Feedback validation errors
var (
	ErrEmptyFeedbackID     = errors.New("feedback ID cannot be empty")
	ErrEmptyFeedbackUserID = errors.New("feedback user ID cannot be empty")
	ErrEmptyFeedbackTarget = errors.New("feedback strategy ID cannot be empty")
)

// Rating bounds for strategy feedback
const (
	MinEffectiveness = 1
	MaxEffectiveness = 5
)

// StrategyFeedback records how well a strategy worked for a user.
// Feedback is append-only.
type StrategyFeedback struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	StrategyID    string    `json:"strategy_id"`
	Effectiveness int       `json:"effectiveness"`
	Emotion       string    `json:"emotion,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewStrategyFeedback creates a new feedback record stamped with the current time.
func NewStrategyFeedback(userID uuid.UUID, strategyID string, effectiveness int, emotion string) (*StrategyFeedback, error) {
	fb := &StrategyFeedback{
		ID:            uuid.New(),
		UserID:        userID,
		StrategyID:    strings.TrimSpace(strategyID),
		Effectiveness: effectiveness,
		Emotion:       strings.TrimSpace(emotion),
		Timestamp:     time.Now().UTC(),
	}

	if err := fb.Validate(); err != nil {
		return nil, err
	}

	return fb, nil
}

// Validate checks if the StrategyFeedback has valid data.
func (f *StrategyFeedback) Validate() error {
	if f.ID == uuid.Nil {
		return ErrEmptyFeedbackID
	}
	if f.UserID == uuid.Nil {
		return ErrEmptyFeedbackUserID
	}
	if f.StrategyID == "" {
		return ErrEmptyFeedbackTarget
	}
	if f.Effectiveness < MinEffectiveness || f.Effectiveness > MaxEffectiveness {
		return ErrInvalidRating
	}
	return nil
}

// EffectivenessStats is the running average rating of one strategy.
type EffectivenessStats struct {
	StrategyID string
	Average    float64
	Count      int
}

// AggregateFeedback groups feedback by strategy into average and count.
// The result is ordered by the first appearance of each strategy in log.
func AggregateFeedback(log []StrategyFeedback) []EffectivenessStats {
	index := make(map[string]int)
	sums := make([]int, 0)
	stats := make([]EffectivenessStats, 0)

	for _, fb := range log {
		i, ok := index[fb.StrategyID]
		if !ok {
			i = len(stats)
			index[fb.StrategyID] = i
			stats = append(stats, EffectivenessStats{StrategyID: fb.StrategyID})
			sums = append(sums, 0)
		}
		sums[i] += fb.Effectiveness
		stats[i].Count++
	}

	for i := range stats {
		stats[i].Average = float64(sums[i]) / float64(stats[i].Count)
	}

	return stats
}
