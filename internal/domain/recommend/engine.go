package recommend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/phrazzld/attune-api/internal/domain"
)

// ReasonType tags why a strategy was recommended.
type ReasonType string

// Recommendation reasons, in the order the stages run
const (
	ReasonEffectiveness ReasonType = "effectiveness"
	ReasonEmotion       ReasonType = "emotion"
	ReasonEvidence      ReasonType = "evidence"
	ReasonPreference    ReasonType = "preference"
)

// Stage parameters
const (
	// MinEffectiveAverage and MinEffectiveCount qualify a strategy as proven.
	MinEffectiveAverage = 3.5
	MinEffectiveCount   = 2

	// TopEmotions is how many of the most frequent emotions are matched.
	TopEmotions = 3
	// PerEmotion is how many strategies are picked for each frequent emotion.
	PerEmotion = 2
	// MaxEvidence is how many evidence-backed strategies are added.
	MaxEvidence = 2

	DefaultLimit = 10
	MaxLimit     = 20
)

// Fixed suitability per stage
const (
	suitabilityEffectiveness = 90
	suitabilityEmotion       = 85
	suitabilityEvidence      = 80
	suitabilityPreference    = 75
)

type scoreRange struct {
	base, width float64
}

var jitterRanges = map[ReasonType]scoreRange{
	ReasonEmotion:    {base: 70, width: 15},
	ReasonEvidence:   {base: 65, width: 15},
	ReasonPreference: {base: 60, width: 10},
}

// DefaultEvidenceMarkers are the trusted-source substrings that mark a
// strategy's evidence base as authoritative.
var DefaultEvidenceMarkers = []string{
	"American Psychological Association",
	"National Institute of Mental Health",
	"World Health Organization",
	"Mayo Clinic",
	"Harvard Medical School",
	"NHS",
}

// Request carries the per-call recommendation options. Categories and
// Complexity, when set, replace the stored preferences for this call.
type Request struct {
	Emotion    string
	Categories []domain.Category
	Complexity domain.Complexity
	Limit      int
}

// Recommendation is one ranked strategy with its justification.
type Recommendation struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Steps        []string        `json:"steps"`
	Category     domain.Category `json:"category"`
	Suitability  int             `json:"suitability"`
	TimeRequired string          `json:"time_required"`
	Reason       string          `json:"reason"`
	ReasonType   ReasonType      `json:"reason_type"`
	Score        float64         `json:"score"`
}

// Engine ranks catalog strategies for a user. It holds no per-call state and
// may be shared between goroutines.
type Engine struct {
	catalog      *Catalog
	jitter       Jitter
	markers      []string
	defaultLimit int
	maxLimit     int
}

// Option configures an Engine.
type Option func(*Engine)

// WithJitter replaces the default hash-based jitter.
func WithJitter(j Jitter) Option {
	return func(e *Engine) {
		if j != nil {
			e.jitter = j
		}
	}
}

// WithEvidenceMarkers replaces the trusted-source allow-list.
func WithEvidenceMarkers(markers ...string) Option {
	return func(e *Engine) {
		e.markers = append([]string(nil), markers...)
	}
}

// WithLimits sets the limit used when a request has none and the largest
// limit a request may ask for.
func WithLimits(defaultLimit, maxLimit int) Option {
	return func(e *Engine) {
		if defaultLimit > 0 {
			e.defaultLimit = defaultLimit
		}
		if maxLimit > 0 {
			e.maxLimit = maxLimit
		}
	}
}

// NewEngine creates an engine over catalog.
func NewEngine(catalog *Catalog, opts ...Option) *Engine {
	e := &Engine{
		catalog:      catalog,
		jitter:       HashJitter{},
		markers:      append([]string(nil), DefaultEvidenceMarkers...),
		defaultLimit: DefaultLimit,
		maxLimit:     MaxLimit,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.defaultLimit > e.maxLimit {
		e.defaultLimit = e.maxLimit
	}
	return e
}

// Catalog returns the catalog the engine ranks.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// selection accumulates recommendations and remembers which IDs are taken.
type selection struct {
	items []Recommendation
	taken map[string]bool
}

func (s *selection) has(id string) bool {
	return s.taken[id]
}

func (s *selection) add(r Recommendation) {
	s.taken[r.ID] = true
	s.items = append(s.items, r)
}

// Recommend returns up to the requested number of strategies, ranked by
// score. With an empty catalog, or with neither events nor feedback, the
// result is empty. The inputs are not modified.
func (e *Engine) Recommend(
	events []domain.EmotionEvent,
	feedback []domain.StrategyFeedback,
	prefs domain.UserPreferences,
	req Request,
) []Recommendation {
	if e.catalog.Len() == 0 || (len(events) == 0 && len(feedback) == 0) {
		return []Recommendation{}
	}

	limit := req.Limit
	if limit <= 0 {
		limit = e.defaultLimit
	}
	if limit > e.maxLimit {
		limit = e.maxLimit
	}

	pool := e.candidates(prefs, req)
	if len(pool) == 0 {
		return []Recommendation{}
	}

	sel := &selection{
		items: make([]Recommendation, 0, len(pool)),
		taken: make(map[string]bool, len(pool)),
	}

	// Proven by the user's own feedback.
	inPool := make(map[string]int, len(pool))
	for i, s := range pool {
		inPool[s.ID] = i
	}
	for _, stats := range domain.AggregateFeedback(feedback) {
		if stats.Average < MinEffectiveAverage || stats.Count < MinEffectiveCount {
			continue
		}
		i, ok := inPool[stats.StrategyID]
		if !ok || sel.has(stats.StrategyID) {
			continue
		}
		reason := fmt.Sprintf("You rated this %.1f out of 5 on average across %d uses.", stats.Average, stats.Count)
		sel.add(e.recommendation(pool[i], ReasonEffectiveness, suitabilityEffectiveness, stats.Average*20, reason))
	}

	// Matches the emotions logged most often.
	for _, emotion := range topEmotions(events, TopEmotions) {
		picked := 0
		for _, s := range pool {
			if picked == PerEmotion {
				break
			}
			if sel.has(s.ID) || !s.SuitableForEmotion(emotion) {
				continue
			}
			reason := fmt.Sprintf("Helpful for %s, one of the emotions you log most often.", emotion)
			sel.add(e.recommendation(s, ReasonEmotion, suitabilityEmotion, e.jitteredScore(ReasonEmotion, s.ID), reason))
			picked++
		}
	}

	// Backed by a recognised authority.
	picked := 0
	for _, s := range pool {
		if picked == MaxEvidence {
			break
		}
		if sel.has(s.ID) || !e.hasEvidence(s.EvidenceBase) {
			continue
		}
		reason := "Supported by research from a recognised health authority."
		sel.add(e.recommendation(s, ReasonEvidence, suitabilityEvidence, e.jitteredScore(ReasonEvidence, s.ID), reason))
		picked++
	}

	// Fill up from the preferred categories in catalog order.
	for _, s := range pool {
		if len(sel.items) >= limit {
			break
		}
		if sel.has(s.ID) {
			continue
		}
		reason := fmt.Sprintf("Matches your preference for %s strategies.", s.Category)
		sel.add(e.recommendation(s, ReasonPreference, suitabilityPreference, e.jitteredScore(ReasonPreference, s.ID), reason))
	}

	result := sel.items
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Score > result[j].Score
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result
}

// candidates filters the catalog by category, complexity and, when given,
// the requested emotion.
func (e *Engine) candidates(prefs domain.UserPreferences, req Request) []domain.RegulationStrategy {
	prefs = prefs.Normalized()

	categories := prefs.PreferredStrategyTypes
	if len(req.Categories) > 0 {
		categories = req.Categories
	}
	allowed := make(map[domain.Category]bool, len(categories))
	for _, c := range categories {
		allowed[c] = true
	}

	complexity := prefs.StrategyComplexity
	if req.Complexity.Valid() {
		complexity = req.Complexity
	}

	emotion := strings.TrimSpace(req.Emotion)

	pool := make([]domain.RegulationStrategy, 0, e.catalog.Len())
	for _, s := range e.catalog.strategies {
		if !allowed[s.Category] || !complexity.Allows(s.Complexity) {
			continue
		}
		if emotion != "" && !s.SuitableForEmotion(emotion) {
			continue
		}
		pool = append(pool, s)
	}
	return pool
}

func (e *Engine) hasEvidence(text string) bool {
	for _, marker := range e.markers {
		if marker != "" && strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

func (e *Engine) jitteredScore(reason ReasonType, id string) float64 {
	r := jitterRanges[reason]
	return r.base + clampFraction(e.jitter.Fraction(reason, id))*r.width
}

func (e *Engine) recommendation(
	s domain.RegulationStrategy,
	reasonType ReasonType,
	suitability int,
	score float64,
	reason string,
) Recommendation {
	return Recommendation{
		ID:           s.ID,
		Title:        s.Name,
		Description:  s.Description,
		Steps:        append([]string(nil), s.Steps...),
		Category:     s.Category,
		Suitability:  suitability,
		TimeRequired: s.Duration.TimeRequired(),
		Reason:       reason,
		ReasonType:   reasonType,
		Score:        score,
	}
}

// topEmotions returns up to n labels by descending frequency; ties keep the
// first-encountered label first.
func topEmotions(events []domain.EmotionEvent, n int) []string {
	index := make(map[string]int)
	labels := make([]string, 0)
	counts := make([]int, 0)
	for _, ev := range events {
		i, ok := index[ev.Emotion]
		if !ok {
			i = len(labels)
			index[ev.Emotion] = i
			labels = append(labels, ev.Emotion)
			counts = append(counts, 0)
		}
		counts[i]++
	}

	order := make([]int, len(labels))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return counts[order[a]] > counts[order[b]]
	})

	if len(order) > n {
		order = order[:n]
	}
	top := make([]string, len(order))
	for i, idx := range order {
		top[i] = labels[idx]
	}
	return top
}
