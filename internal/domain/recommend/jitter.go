package recommend

import (
	"math"

	"github.com/cespare/xxhash/v2"
)

// Jitter supplies the fractional offset, in [0,1), used to spread scores
// within a stage's range.
type Jitter interface {
	Fraction(reason ReasonType, strategyID string) float64
}

// JitterFunc adapts a plain function to the Jitter interface.
type JitterFunc func(reason ReasonType, strategyID string) float64

// Fraction calls f.
func (f JitterFunc) Fraction(reason ReasonType, strategyID string) float64 {
	return f(reason, strategyID)
}

// HashJitter derives the offset from an xxhash of the reason and strategy ID,
// so the same strategy always gets the same score for the same reason.
type HashJitter struct{}

// Fraction maps the top 53 bits of the hash onto [0,1).
func (HashJitter) Fraction(reason ReasonType, strategyID string) float64 {
	h := xxhash.Sum64String(string(reason) + ":" + strategyID)
	return float64(h>>11) / (1 << 53)
}

func clampFraction(f float64) float64 {
	switch {
	case f < 0 || math.IsNaN(f):
		return 0
	case f >= 1:
		return 0.999999
	default:
		return f
	}
}
