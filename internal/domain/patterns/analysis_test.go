package patterns

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/attune-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Monday 6 January 2025, midnight UTC.
var baseDay = time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)

func event(emotion string, intensity float64, at time.Time, trigger domain.TriggerValue) domain.EmotionEvent {
	return domain.EmotionEvent{
		ID:        uuid.New(),
		UserID:    uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		Timestamp: at,
		Emotion:   emotion,
		Intensity: intensity,
		Triggers:  trigger,
	}
}

func findInsight(insights []Insight, id string) (Insight, bool) {
	for _, in := range insights {
		if in.ID == id {
			return in, true
		}
	}
	return Insight{}, false
}

func TestParseScope(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Scope
		wantErr bool
	}{
		{"", ScopeAll, false},
		{"all", ScopeAll, false},
		{"Insights", ScopeInsights, false},
		{"triggers", ScopeTriggers, false},
		{"time", ScopeTime, false},
		{"trends", ScopeTrends, false},
		{"correlations", ScopeCorrelations, false},
		{"forecast", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseScope(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrInvalidScope))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAnalyze_EmptyInput(t *testing.T) {
	t.Parallel()

	result := Analyze(nil, nil, Options{})

	assert.Equal(t, ScopeAll, result.Scope)
	assert.Equal(t, 0, result.TotalEvents)
	assert.NotNil(t, result.Insights)
	assert.Empty(t, result.Insights)
	assert.NotNil(t, result.TriggerPatterns)
	assert.Empty(t, result.TriggerPatterns)
	assert.NotNil(t, result.Trends)
	assert.Empty(t, result.Trends)
	assert.NotNil(t, result.Correlations)
	assert.Empty(t, result.Correlations)
	assert.NotNil(t, result.Journals)

	require.Len(t, result.TimePatterns.Hourly, 24)
	require.Len(t, result.TimePatterns.Daily, 7)
	for h, bucket := range result.TimePatterns.Hourly {
		assert.Equal(t, h, bucket.Hour)
		assert.Zero(t, bucket.Count)
	}
	for d, bucket := range result.TimePatterns.Daily {
		assert.Equal(t, d, bucket.Day)
		assert.Equal(t, time.Weekday(d).String(), bucket.Name)
		assert.Zero(t, bucket.Count)
	}
}

func TestAnalyze_ScenarioA(t *testing.T) {
	t.Parallel()

	events := []domain.EmotionEvent{
		event("Anxious", 4, baseDay.Add(9*time.Hour), domain.TriggerValue{}),
		event("Anxious", 5, baseDay.Add(10*time.Hour), domain.TriggerValue{}),
		event("Calm", 2, baseDay.Add(14*time.Hour), domain.TriggerValue{}),
	}

	result := Analyze(events, nil, Options{Scope: ScopeInsights})

	common, ok := findInsight(result.Insights, InsightIDMostCommon)
	require.True(t, ok, "most common emotion insight should be present")
	assert.Equal(t, "Anxious", common.Emotion)
	assert.Equal(t, 2, common.Count)

	intense, ok := findInsight(result.Insights, InsightIDIntensity)
	require.True(t, ok, "highest intensity insight should be present")
	assert.Equal(t, "Anxious", intense.Emotion)
	assert.InDelta(t, 4.5, intense.Average, 1e-9)

	tod, ok := findInsight(result.Insights, InsightIDTimeOfDay)
	require.True(t, ok)
	assert.Equal(t, string(Morning), tod.Value)
	assert.Equal(t, 2, tod.Count)

	dow, ok := findInsight(result.Insights, InsightIDDayOfWeek)
	require.True(t, ok)
	assert.Equal(t, "Monday", dow.Value)
	assert.Equal(t, 3, dow.Count)

	suggestion, ok := findInsight(result.Insights, InsightIDSuggestion)
	require.True(t, ok, "suggestion insight should be present for Anxious")
	assert.Equal(t, InsightSuggestion, suggestion.Type)
	assert.Contains(t, suggestion.Description, "breathing")

	_, ok = findInsight(result.Insights, InsightIDTrigger)
	assert.False(t, ok, "no trigger insight without triggers")

	// Insights are emitted in a fixed order.
	ids := make([]string, 0, len(result.Insights))
	for _, in := range result.Insights {
		ids = append(ids, in.ID)
	}
	assert.Equal(t, []string{
		InsightIDMostCommon,
		InsightIDIntensity,
		InsightIDTimeOfDay,
		InsightIDDayOfWeek,
		InsightIDSuggestion,
	}, ids)
}

func TestInsights_TieBreaksAndPreconditions(t *testing.T) {
	t.Parallel()

	t.Run("first encountered label wins ties", func(t *testing.T) {
		events := []domain.EmotionEvent{
			event("Calm", 3, baseDay.Add(13*time.Hour), domain.TriggerValue{}),
			event("Happy", 3, baseDay.Add(14*time.Hour), domain.TriggerValue{}),
		}
		insights := Insights(events, time.UTC)

		common, _ := findInsight(insights, InsightIDMostCommon)
		assert.Equal(t, "Calm", common.Emotion)
		intense, _ := findInsight(insights, InsightIDIntensity)
		assert.Equal(t, "Calm", intense.Emotion)

		_, ok := findInsight(insights, InsightIDSuggestion)
		assert.False(t, ok, "no suggestion for a non-negative emotion")
	})

	t.Run("single trigger occurrence is not common", func(t *testing.T) {
		events := []domain.EmotionEvent{
			event("Sad", 2, baseDay.Add(20*time.Hour), domain.RawTrigger("news")),
			event("Sad", 2, baseDay.Add(21*time.Hour), domain.RawTrigger("rain")),
		}
		_, ok := findInsight(Insights(events, time.UTC), InsightIDTrigger)
		assert.False(t, ok)
	})

	t.Run("repeated trigger is reported", func(t *testing.T) {
		events := []domain.EmotionEvent{
			event("Sad", 2, baseDay.Add(20*time.Hour), domain.RawTrigger("news")),
			event("Angry", 4, baseDay.Add(21*time.Hour), domain.StructuredTrigger("news")),
		}
		insights := Insights(events, time.UTC)
		trigger, ok := findInsight(insights, InsightIDTrigger)
		require.True(t, ok)
		assert.Equal(t, "news", trigger.Value)
		assert.Equal(t, 2, trigger.Count)

		suggestion, ok := findInsight(insights, InsightIDSuggestion)
		require.True(t, ok)
		assert.Equal(t, "Sad", suggestion.Emotion)
	})
}

func TestTimeOfDayFor(t *testing.T) {
	t.Parallel()

	expected := map[int]TimeOfDay{
		0: Night, 4: Night, 5: Morning, 11: Morning, 12: Afternoon, 16: Afternoon,
		17: Evening, 21: Evening, 22: Night, 23: Night,
	}
	for hour, want := range expected {
		assert.Equal(t, want, TimeOfDayFor(hour), "hour %d", hour)
	}
}

func TestAnalyze_ScenarioB(t *testing.T) {
	t.Parallel()

	events := []domain.EmotionEvent{
		event("Anxious", 4, baseDay.Add(9*time.Hour), domain.RawTrigger("presentation")),
		event("Frustrated", 3, baseDay.Add(9*time.Hour+40*time.Minute), domain.RawTrigger("presentation")),
	}

	result := Analyze(events, nil, Options{})

	require.Len(t, result.TriggerPatterns, 1)
	group := result.TriggerPatterns[0]
	assert.Equal(t, "presentation", group.Trigger)
	assert.Equal(t, 2, group.Total)
	assert.Equal(t, map[string]int{"Anxious": 1, "Frustrated": 1}, group.Emotions)

	require.Len(t, result.Correlations, 1)
	pair := result.Correlations[0]
	assert.GreaterOrEqual(t, pair.Count, 1)
	assert.Equal(t, "Anxious", pair.Emotion1)
	assert.Equal(t, "Frustrated", pair.Emotion2)
	assert.InDelta(t, 1.0, pair.Strength, 1e-9)
}

func TestTriggerPatterns_TopFive(t *testing.T) {
	t.Parallel()

	var events []domain.EmotionEvent
	for i := 0; i < 8; i++ {
		trigger := domain.RawTrigger(fmt.Sprintf("trigger-%d", i))
		// trigger-i appears i+1 times
		for n := 0; n <= i; n++ {
			events = append(events, event("Sad", 2, baseDay.Add(time.Duration(n)*time.Hour), trigger))
		}
	}
	events = append(events, event("Sad", 2, baseDay, domain.TriggerValue{}))

	groups := TriggerPatternsOf(events)
	require.Len(t, groups, MaxTriggerPatterns)
	assert.Equal(t, "trigger-7", groups[0].Trigger)
	for i := 1; i < len(groups); i++ {
		assert.GreaterOrEqual(t, groups[i-1].Total, groups[i].Total)
	}
}

func TestTimePatterns_LocalBuckets(t *testing.T) {
	t.Parallel()

	// Saturday 23:30 UTC is Sunday 01:30 two hours east.
	saturdayLate := time.Date(2025, time.January, 11, 23, 30, 0, 0, time.UTC)
	events := []domain.EmotionEvent{event("Tired", 2, saturdayLate, domain.TriggerValue{})}

	utc := TimePatternsOf(events, nil)
	assert.Equal(t, 1, utc.Hourly[23].Count)
	assert.Equal(t, 1, utc.Daily[time.Saturday].Count)

	east := TimePatternsOf(events, time.FixedZone("UTC+2", 2*60*60))
	assert.Equal(t, 1, east.Hourly[1].Count)
	assert.Equal(t, 1, east.Daily[time.Sunday].Count)
	assert.Len(t, east.Hourly, 24)
	assert.Len(t, east.Daily, 7)

	// Trend dates stay in UTC regardless of the location.
	result := Analyze(events, nil, Options{Location: time.FixedZone("UTC+2", 2*60*60)})
	require.Len(t, result.Trends, 1)
	assert.Equal(t, "2025-01-11", result.Trends[0].Date)
}

func TestTrends_OrderedWithoutGaps(t *testing.T) {
	t.Parallel()

	events := []domain.EmotionEvent{
		event("Happy", 3, baseDay.AddDate(0, 0, 5), domain.TriggerValue{}),
		event("Sad", 2, baseDay, domain.TriggerValue{}),
		event("Happy", 4, baseDay.AddDate(0, 0, 5).Add(time.Hour), domain.TriggerValue{}),
		event("Calm", 1, baseDay.AddDate(0, 0, 2), domain.TriggerValue{}),
	}

	rows := Trends(events)
	require.Len(t, rows, 3)
	for i := 1; i < len(rows); i++ {
		assert.LessOrEqual(t, rows[i-1].Date, rows[i].Date)
	}
	assert.Equal(t, "2025-01-06", rows[0].Date)
	assert.Equal(t, "2025-01-08", rows[1].Date)
	assert.Equal(t, "2025-01-11", rows[2].Date)
	assert.Equal(t, map[string]int{"Happy": 2}, rows[2].Emotions)
}

func TestCorrelations(t *testing.T) {
	t.Parallel()

	t.Run("multiple qualifying neighbours each count", func(t *testing.T) {
		events := []domain.EmotionEvent{
			event("Angry", 4, baseDay.Add(3*time.Hour), domain.TriggerValue{}),
			event("Sad", 2, baseDay.Add(2*time.Hour), domain.TriggerValue{}),
			event("Angry", 4, baseDay.Add(1*time.Hour), domain.TriggerValue{}),
		}
		// Sorted: Angry(1h), Sad(2h), Angry(3h).
		// Angry(1h) -> Sad, Angry: 1; Sad(2h) -> Angry: 1.
		result := Correlations(events)
		require.Len(t, result, 1)
		assert.Equal(t, 2, result[0].Count)
		assert.Equal(t, "Angry", result[0].Emotion1)
		assert.Equal(t, "Sad", result[0].Emotion2)
	})

	t.Run("events outside the window do not count", func(t *testing.T) {
		events := []domain.EmotionEvent{
			event("Happy", 4, baseDay, domain.TriggerValue{}),
			event("Sad", 2, baseDay.Add(25*time.Hour), domain.TriggerValue{}),
		}
		assert.Empty(t, Correlations(events))
	})

	t.Run("only three neighbours are examined", func(t *testing.T) {
		events := []domain.EmotionEvent{
			event("Happy", 4, baseDay, domain.TriggerValue{}),
			event("Calm", 2, baseDay.Add(1*time.Minute), domain.TriggerValue{}),
			event("Calm", 2, baseDay.Add(2*time.Minute), domain.TriggerValue{}),
			event("Calm", 2, baseDay.Add(3*time.Minute), domain.TriggerValue{}),
			event("Sad", 2, baseDay.Add(4*time.Minute), domain.TriggerValue{}),
		}
		result := Correlations(events)
		for _, c := range result {
			assert.False(t, c.Emotion1 == "Happy" && c.Emotion2 == "Sad", "Happy and Sad are four events apart")
		}
	})

	t.Run("pairs are symmetric and bounded", func(t *testing.T) {
		labels := []string{"A", "B", "C", "D", "E", "F"}
		var events []domain.EmotionEvent
		for i := 0; i < 60; i++ {
			events = append(events, event(labels[i%len(labels)], 3, baseDay.Add(time.Duration(i)*time.Minute), domain.TriggerValue{}))
		}

		result := Correlations(events)
		require.Len(t, result, MaxCorrelations)

		seen := make(map[string]bool)
		for i, c := range result {
			assert.Less(t, c.Emotion1, c.Emotion2)
			key := c.Emotion1 + "|" + c.Emotion2
			reverse := c.Emotion2 + "|" + c.Emotion1
			assert.False(t, seen[key] || seen[reverse], "pair %s reported twice", key)
			seen[key] = true
			assert.Greater(t, c.Count, 0)
			assert.LessOrEqual(t, c.Strength, 1.0)
			if i > 0 {
				assert.GreaterOrEqual(t, result[i-1].Count, c.Count)
			}
		}
		assert.InDelta(t, 1.0, result[0].Strength, 1e-9)
	})
}

func TestAnalyze_ScopeSelectsReports(t *testing.T) {
	t.Parallel()

	events := []domain.EmotionEvent{
		event("Anxious", 4, baseDay.Add(9*time.Hour), domain.RawTrigger("exam")),
		event("Sad", 2, baseDay.Add(10*time.Hour), domain.RawTrigger("exam")),
	}

	result := Analyze(events, nil, Options{Scope: ScopeTriggers})
	assert.Equal(t, ScopeTriggers, result.Scope)
	assert.Len(t, result.TriggerPatterns, 1)
	assert.Empty(t, result.Insights)
	assert.Empty(t, result.Trends)
	assert.Empty(t, result.Correlations)
	assert.Empty(t, result.TimePatterns.Hourly)

	result = Analyze(events, nil, Options{Scope: ScopeTime})
	assert.Len(t, result.TimePatterns.Hourly, 24)
	assert.Empty(t, result.TriggerPatterns)
}

func TestAnalyze_DeterministicAndPure(t *testing.T) {
	t.Parallel()

	events := []domain.EmotionEvent{
		event("Overwhelmed", 5, baseDay.Add(18*time.Hour), domain.StructuredTrigger("work", "family")),
		event("Calm", 1, baseDay.Add(6*time.Hour), domain.TriggerValue{}),
		event("Overwhelmed", 4, baseDay.AddDate(0, 0, 1).Add(19*time.Hour), domain.StructuredTrigger("work", "family")),
		event("Sad", 3, baseDay.AddDate(0, 0, 1).Add(20*time.Hour), domain.RawTrigger("work")),
	}
	original := make([]domain.EmotionEvent, len(events))
	copy(original, events)

	journals := []domain.JournalEntry{{ID: uuid.New(), Content: "note", Timestamp: baseDay}}

	first := Analyze(events, journals, Options{})
	second := Analyze(events, journals, Options{})

	assert.Equal(t, first, second)
	assert.Equal(t, original, events, "input order must not change")
	assert.Equal(t, journals, first.Journals)
	assert.Equal(t, 4, first.TotalEvents)
}
