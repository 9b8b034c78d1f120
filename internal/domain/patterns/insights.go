package patterns

import (
	"fmt"
	"time"

	"github.com/phrazzld/attune-api/internal/domain"
)

// InsightType tags what an insight describes.
type InsightType string

// Insight types
const (
	InsightPattern    InsightType = "pattern"
	InsightIntensity  InsightType = "intensity"
	InsightTimeOfDay  InsightType = "time_of_day"
	InsightDayOfWeek  InsightType = "day_of_week"
	InsightTrigger    InsightType = "trigger"
	InsightSuggestion InsightType = "suggestion"
)

// Stable insight IDs
const (
	InsightIDMostCommon = "most-common-emotion"
	InsightIDIntensity  = "highest-intensity-emotion"
	InsightIDTimeOfDay  = "time-of-day-pattern"
	InsightIDDayOfWeek  = "day-of-week-pattern"
	InsightIDTrigger    = "common-trigger"
	InsightIDSuggestion = "coping-suggestion"
)

// Insight is one human-readable observation together with the raw values it
// was derived from.
type Insight struct {
	ID          string      `json:"id"`
	Type        InsightType `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Emotion     string      `json:"emotion,omitempty"`
	Count       int         `json:"count,omitempty"`
	Average     float64     `json:"average,omitempty"`
	Value       string      `json:"value,omitempty"`
}

// TimeOfDay names a part of the day.
type TimeOfDay string

// Parts of the day in tie-break order.
const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
	Night     TimeOfDay = "night"
)

var timesOfDay = []TimeOfDay{Morning, Afternoon, Evening, Night}

// TimeOfDayFor buckets an hour: morning 05-11, afternoon 12-16, evening 17-21
// and night 22-04.
func TimeOfDayFor(hour int) TimeOfDay {
	switch {
	case hour >= 5 && hour < 12:
		return Morning
	case hour >= 12 && hour < 17:
		return Afternoon
	case hour >= 17 && hour < 22:
		return Evening
	default:
		return Night
	}
}

// copingSuggestions maps the negative emotions to one canned suggestion each.
var copingSuggestions = map[string]string{
	"Anxious":     "Try a few minutes of slow, deep breathing (inhale for 4, hold for 4, exhale for 6) when you notice anxiety building.",
	"Angry":       "Step away for a short walk or count slowly to ten before responding when anger rises.",
	"Sad":         "Reach out to someone you trust or plan a small activity you usually enjoy.",
	"Frustrated":  "Break the task in front of you into smaller steps and take a short pause between them.",
	"Overwhelmed": "Write down everything on your mind, then pick just one small item to focus on first.",
}

// Suggestion returns the coping suggestion for a negative emotion label.
func Suggestion(emotion string) (string, bool) {
	s, ok := copingSuggestions[emotion]
	return s, ok
}

// Insights builds the ordered insight list. Each insight is appended only when
// its precondition holds, so an empty input yields an empty list.
func Insights(events []domain.EmotionEvent, loc *time.Location) []Insight {
	insights := make([]Insight, 0, 6)
	if len(events) == 0 {
		return insights
	}
	if loc == nil {
		loc = time.UTC
	}

	stats := groupByEmotion(events)

	// Most common emotion; the first label reaching the highest count wins.
	common := stats[0]
	for _, s := range stats[1:] {
		if s.count > common.count {
			common = s
		}
	}
	insights = append(insights, Insight{
		ID:          InsightIDMostCommon,
		Type:        InsightPattern,
		Title:       "Most common emotion",
		Description: fmt.Sprintf("You most often felt %s (%d %s).", common.emotion, common.count, plural(common.count, "time", "times")),
		Emotion:     common.emotion,
		Count:       common.count,
	})

	// Highest mean intensity.
	intense := stats[0]
	intenseAvg := intense.sum / float64(intense.count)
	for _, s := range stats[1:] {
		if avg := s.sum / float64(s.count); avg > intenseAvg {
			intense, intenseAvg = s, avg
		}
	}
	insights = append(insights, Insight{
		ID:          InsightIDIntensity,
		Type:        InsightIntensity,
		Title:       "Most intense emotion",
		Description: fmt.Sprintf("%s was felt most strongly, with an average intensity of %.1f.", intense.emotion, intenseAvg),
		Emotion:     intense.emotion,
		Count:       intense.count,
		Average:     intenseAvg,
	})

	// Time of day.
	tod := make(map[TimeOfDay]int, len(timesOfDay))
	for _, e := range events {
		tod[TimeOfDayFor(e.Timestamp.In(loc).Hour())]++
	}
	bestTOD, bestTODCount := timesOfDay[0], tod[timesOfDay[0]]
	for _, part := range timesOfDay[1:] {
		if tod[part] > bestTODCount {
			bestTOD, bestTODCount = part, tod[part]
		}
	}
	if bestTODCount > 0 {
		insights = append(insights, Insight{
			ID:          InsightIDTimeOfDay,
			Type:        InsightTimeOfDay,
			Title:       "Time of day pattern",
			Description: fmt.Sprintf("You log the most emotions in the %s (%d %s).", bestTOD, bestTODCount, plural(bestTODCount, "entry", "entries")),
			Count:       bestTODCount,
			Value:       string(bestTOD),
		})
	}

	// Day of week.
	var days [7]int
	for _, e := range events {
		days[e.Timestamp.In(loc).Weekday()]++
	}
	bestDay := time.Sunday
	for d := time.Monday; d <= time.Saturday; d++ {
		if days[d] > days[bestDay] {
			bestDay = d
		}
	}
	if days[bestDay] > 0 {
		insights = append(insights, Insight{
			ID:          InsightIDDayOfWeek,
			Type:        InsightDayOfWeek,
			Title:       "Day of week pattern",
			Description: fmt.Sprintf("%s is the day you log the most emotions (%d %s).", bestDay, days[bestDay], plural(days[bestDay], "entry", "entries")),
			Count:       days[bestDay],
			Value:       bestDay.String(),
		})
	}

	// Common trigger; a single occurrence is not common.
	if groups := groupByTrigger(events); len(groups) > 0 {
		top := groups[0]
		for _, g := range groups[1:] {
			if g.Total > top.Total {
				top = g
			}
		}
		if top.Total > 1 {
			insights = append(insights, Insight{
				ID:          InsightIDTrigger,
				Type:        InsightTrigger,
				Title:       "Common trigger",
				Description: fmt.Sprintf("%q came up as a trigger %d times.", top.Trigger, top.Total),
				Count:       top.Total,
				Value:       top.Trigger,
			})
		}
	}

	if suggestion, ok := Suggestion(common.emotion); ok {
		insights = append(insights, Insight{
			ID:          InsightIDSuggestion,
			Type:        InsightSuggestion,
			Title:       fmt.Sprintf("Coping with feeling %s", common.emotion),
			Description: suggestion,
			Emotion:     common.emotion,
		})
	}

	return insights
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
