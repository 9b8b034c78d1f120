package patterns

import (
	"sort"
	"time"

	"github.com/phrazzld/attune-api/internal/domain"
)

// Correlation scan parameters
const (
	// CorrelationLookahead is how many following events are compared with each event.
	CorrelationLookahead = 3

	// CorrelationWindow is the maximum gap between two co-occurring events.
	CorrelationWindow = 24 * time.Hour

	// MaxCorrelations bounds the correlation report.
	MaxCorrelations = 10
)

// Correlation counts how often two distinct emotions were logged close
// together. Emotion1 sorts before Emotion2, so (A,B) and (B,A) share an entry.
type Correlation struct {
	Emotion1 string  `json:"emotion1"`
	Emotion2 string  `json:"emotion2"`
	Count    int     `json:"count"`
	Strength float64 `json:"strength"`
}

type emotionPair struct {
	a, b string
}

func pairOf(x, y string) emotionPair {
	if y < x {
		x, y = y, x
	}
	return emotionPair{a: x, b: y}
}

// Correlations scans events in time order. For each event, each of the next
// CorrelationLookahead events that falls within CorrelationWindow and carries
// a different emotion adds one to that pair, so one event can count towards
// the same pair more than once. Strength is the count relative to the
// strongest pair. The top MaxCorrelations pairs by count are returned.
func Correlations(events []domain.EmotionEvent) []Correlation {
	labels := emotionOrder(events)

	index := make(map[emotionPair]int)
	pairs := make([]Correlation, 0)
	for i := 0; i < len(labels); i++ {
		for j := i + 1; j < len(labels); j++ {
			p := pairOf(labels[i], labels[j])
			index[p] = len(pairs)
			pairs = append(pairs, Correlation{Emotion1: p.a, Emotion2: p.b})
		}
	}

	sorted := make([]domain.EmotionEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	for i, current := range sorted {
		end := min(i+CorrelationLookahead, len(sorted)-1)
		for j := i + 1; j <= end; j++ {
			next := sorted[j]
			if next.Timestamp.Sub(current.Timestamp) > CorrelationWindow {
				continue
			}
			if next.Emotion == current.Emotion {
				continue
			}
			pairs[index[pairOf(current.Emotion, next.Emotion)]].Count++
		}
	}

	maxCount := 1
	for _, p := range pairs {
		maxCount = max(maxCount, p.Count)
	}

	result := make([]Correlation, 0, len(pairs))
	for _, p := range pairs {
		if p.Count == 0 {
			continue
		}
		p.Strength = float64(p.Count) / float64(maxCount)
		result = append(result, p)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	if len(result) > MaxCorrelations {
		result = result[:MaxCorrelations]
	}
	return result
}
