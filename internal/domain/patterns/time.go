package patterns

import (
	"time"

	"github.com/phrazzld/attune-api/internal/domain"
)

// HourBucket counts events logged during one local hour.
type HourBucket struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// DayBucket counts events logged on one local weekday. Day 0 is Sunday.
type DayBucket struct {
	Day   int    `json:"day"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TimePatterns holds the hourly and weekday histograms.
type TimePatterns struct {
	Hourly []HourBucket `json:"hourly"`
	Daily  []DayBucket  `json:"daily"`
}

// TimePatternsOf builds the 24 hourly and 7 weekday buckets. All buckets are
// present even when empty.
func TimePatternsOf(events []domain.EmotionEvent, loc *time.Location) TimePatterns {
	if loc == nil {
		loc = time.UTC
	}

	hourly := make([]HourBucket, 24)
	for h := range hourly {
		hourly[h].Hour = h
	}
	daily := make([]DayBucket, 7)
	for d := range daily {
		daily[d].Day = d
		daily[d].Name = time.Weekday(d).String()
	}

	for _, e := range events {
		local := e.Timestamp.In(loc)
		hourly[local.Hour()].Count++
		daily[local.Weekday()].Count++
	}

	return TimePatterns{Hourly: hourly, Daily: daily}
}
