package patterns

import (
	"fmt"
	"strings"
	"time"

	"github.com/phrazzld/attune-api/internal/domain"
)

// Scope selects which sub-reports Analyze computes.
type Scope string

// Analysis scopes
const (
	ScopeAll          Scope = "all"
	ScopeInsights     Scope = "insights"
	ScopeTriggers     Scope = "triggers"
	ScopeTime         Scope = "time"
	ScopeTrends       Scope = "trends"
	ScopeCorrelations Scope = "correlations"
)

// ParseScope converts an analysisType request value into a Scope. An empty
// value selects ScopeAll; anything unrecognized is rejected rather than
// defaulted.
func ParseScope(s string) (Scope, error) {
	scope := Scope(strings.ToLower(strings.TrimSpace(s)))
	switch scope {
	case "":
		return ScopeAll, nil
	case ScopeAll, ScopeInsights, ScopeTriggers, ScopeTime, ScopeTrends, ScopeCorrelations:
		return scope, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidScope, s)
	}
}

func (s Scope) includes(part Scope) bool {
	return s == "" || s == ScopeAll || s == part
}

// Options configures a single Analyze call.
type Options struct {
	// Scope selects the sub-reports to compute. Empty means ScopeAll.
	Scope Scope

	// Location is the user's time zone, used for the hour and weekday
	// buckets. Nil means UTC. Trend dates are always UTC.
	Location *time.Location
}

// Analysis is the result of a pattern analysis. Every collection is non-nil
// so that an empty analysis still serializes as empty lists.
type Analysis struct {
	Scope           Scope                 `json:"scope"`
	TotalEvents     int                   `json:"total_events"`
	Insights        []Insight             `json:"insights"`
	TriggerPatterns []TriggerPattern      `json:"trigger_patterns"`
	TimePatterns    TimePatterns          `json:"time_patterns"`
	Trends          []TrendRow            `json:"trends"`
	Correlations    []Correlation         `json:"correlations"`
	Journals        []domain.JournalEntry `json:"journals"`
}

// Analyze derives insights, trigger rankings, time histograms, daily trends
// and emotion co-occurrences from events. It never fails: an empty input
// yields an empty but complete Analysis. The inputs are not modified.
func Analyze(events []domain.EmotionEvent, journals []domain.JournalEntry, opts Options) Analysis {
	scope := opts.Scope
	if scope == "" {
		scope = ScopeAll
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	result := Analysis{
		Scope:           scope,
		TotalEvents:     len(events),
		Insights:        []Insight{},
		TriggerPatterns: []TriggerPattern{},
		TimePatterns:    TimePatterns{Hourly: []HourBucket{}, Daily: []DayBucket{}},
		Trends:          []TrendRow{},
		Correlations:    []Correlation{},
		Journals:        []domain.JournalEntry{},
	}

	if len(journals) > 0 {
		result.Journals = append(result.Journals, journals...)
	}

	if scope.includes(ScopeInsights) {
		result.Insights = Insights(events, loc)
	}
	if scope.includes(ScopeTriggers) {
		result.TriggerPatterns = TriggerPatternsOf(events)
	}
	if scope.includes(ScopeTime) {
		result.TimePatterns = TimePatternsOf(events, loc)
	}
	if scope.includes(ScopeTrends) {
		result.Trends = Trends(events)
	}
	if scope.includes(ScopeCorrelations) {
		result.Correlations = Correlations(events)
	}

	return result
}

// emotionStat accumulates count and intensity for one label.
type emotionStat struct {
	emotion string
	count   int
	sum     float64
}

// groupByEmotion returns per-label stats in first-encountered order.
func groupByEmotion(events []domain.EmotionEvent) []emotionStat {
	index := make(map[string]int)
	stats := make([]emotionStat, 0)
	for _, e := range events {
		i, ok := index[e.Emotion]
		if !ok {
			i = len(stats)
			index[e.Emotion] = i
			stats = append(stats, emotionStat{emotion: e.Emotion})
		}
		stats[i].count++
		stats[i].sum += e.Intensity
	}
	return stats
}

// emotionOrder lists distinct labels in first-encountered order.
func emotionOrder(events []domain.EmotionEvent) []string {
	stats := groupByEmotion(events)
	labels := make([]string, len(stats))
	for i, s := range stats {
		labels[i] = s.emotion
	}
	return labels
}
