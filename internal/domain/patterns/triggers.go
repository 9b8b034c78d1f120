package patterns

import (
	"sort"

	"github.com/phrazzld/attune-api/internal/domain"
)

// MaxTriggerPatterns bounds the trigger pattern report.
const MaxTriggerPatterns = 5

// TriggerPattern counts the emotions recorded under one trigger key.
type TriggerPattern struct {
	Trigger  string         `json:"trigger"`
	Emotions map[string]int `json:"emotions"`
	Total    int            `json:"total"`
}

// TriggerPatternsOf groups events by canonical trigger key and returns the
// MaxTriggerPatterns groups with the highest totals. Events without a trigger
// are skipped.
func TriggerPatternsOf(events []domain.EmotionEvent) []TriggerPattern {
	groups := groupByTrigger(events)
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Total > groups[j].Total
	})
	if len(groups) > MaxTriggerPatterns {
		groups = groups[:MaxTriggerPatterns]
	}
	return groups
}

// groupByTrigger returns trigger groups in first-encountered order.
func groupByTrigger(events []domain.EmotionEvent) []TriggerPattern {
	index := make(map[string]int)
	groups := make([]TriggerPattern, 0)
	for _, e := range events {
		key := e.Triggers.Key()
		if key == "" {
			continue
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, TriggerPattern{Trigger: key, Emotions: make(map[string]int)})
		}
		groups[i].Emotions[e.Emotion]++
		groups[i].Total++
	}
	return groups
}
