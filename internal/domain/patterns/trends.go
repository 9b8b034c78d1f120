package patterns

import (
	"sort"

	"github.com/phrazzld/attune-api/internal/domain"
)

// TrendDateLayout is the date format of trend rows.
const TrendDateLayout = "2006-01-02"

// TrendRow counts the emotions logged on one UTC calendar date.
type TrendRow struct {
	Date     string         `json:"date"`
	Emotions map[string]int `json:"emotions"`
}

// Trends groups events by UTC date, ascending. Dates without events are not
// filled in.
func Trends(events []domain.EmotionEvent) []TrendRow {
	byDate := make(map[string]map[string]int)
	for _, e := range events {
		date := e.Timestamp.UTC().Format(TrendDateLayout)
		counts, ok := byDate[date]
		if !ok {
			counts = make(map[string]int)
			byDate[date] = counts
		}
		counts[e.Emotion]++
	}

	rows := make([]TrendRow, 0, len(byDate))
	for date, counts := range byDate {
		rows = append(rows, TrendRow{Date: date, Emotions: counts})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Date < rows[j].Date
	})
	return rows
}
