package domain

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Category groups regulation strategies by the kind of activity involved.
type Category string

// Strategy categories
const (
	CategoryPhysical    Category = "physical"
	CategoryCognitive   Category = "cognitive"
	CategorySocial      Category = "social"
	CategoryMindfulness Category = "mindfulness"
	CategoryCreative    Category = "creative"
)

// Categories lists every known category in display order.
var Categories = []Category{
	CategoryPhysical,
	CategoryCognitive,
	CategorySocial,
	CategoryMindfulness,
	CategoryCreative,
}

// ParseCategory converts a request value into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	return slices.Contains(Categories, c)
}

// Complexity describes how demanding a strategy is to carry out.
type Complexity string

// Strategy complexities, ordered from least to most demanding
const (
	ComplexitySimple   Complexity = "simple"
	ComplexityModerate Complexity = "moderate"
	ComplexityAdvanced Complexity = "advanced"
)

// ParseComplexity converts a request value into a Complexity.
func ParseComplexity(s string) (Complexity, error) {
	c := Complexity(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidComplexity, s)
	}
	return c, nil
}

// Valid reports whether c is a known complexity.
func (c Complexity) Valid() bool {
	switch c {
	case ComplexitySimple, ComplexityModerate, ComplexityAdvanced:
		return true
	default:
		return false
	}
}

func (c Complexity) rank() int {
	switch c {
	case ComplexitySimple:
		return 1
	case ComplexityModerate:
		return 2
	case ComplexityAdvanced:
		return 3
	default:
		return 0
	}
}

// Allows reports whether a strategy of complexity other fits a user who
// prefers c: simple allows only simple, moderate excludes advanced and
// advanced allows everything.
func (c Complexity) Allows(other Complexity) bool {
	if c == ComplexityAdvanced {
		return true
	}
	return other.rank() > 0 && other.rank() <= c.rank()
}

// Duration is the rough time a strategy takes.
type Duration string

// Strategy durations
const (
	DurationShort  Duration = "short"
	DurationMedium Duration = "medium"
	DurationLong   Duration = "long"
)

// TimeRequired returns the display string for a duration.
func (d Duration) TimeRequired() string {
	switch d {
	case DurationShort:
		return "2-5 minutes"
	case DurationMedium:
		return "5-15 minutes"
	case DurationLong:
		return "15-30 minutes"
	default:
		return "varies"
	}
}

// Strategy validation errors
var (
	ErrEmptyStrategyID   = errors.New("strategy ID cannot be empty")
	ErrEmptyStrategyName = errors.New("strategy name cannot be empty")
)

// RegulationStrategy is a static catalog entry describing one way of
// regulating an emotion. Strategies are shared by all users.
type RegulationStrategy struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Steps        []string   `json:"steps"`
	SuitableFor  []string   `json:"suitable_for"`
	Category     Category   `json:"category"`
	Complexity   Complexity `json:"complexity"`
	Duration     Duration   `json:"duration"`
	EvidenceBase string     `json:"evidence_base"`
}

// Validate checks that the strategy can be placed in a catalog.
func (s *RegulationStrategy) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return ErrEmptyStrategyID
	}
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyStrategyName
	}
	if !s.Category.Valid() {
		return fmt.Errorf("strategy %s: %w: %q", s.ID, ErrInvalidCategory, s.Category)
	}
	if !s.Complexity.Valid() {
		return fmt.Errorf("strategy %s: %w: %q", s.ID, ErrInvalidComplexity, s.Complexity)
	}
	return nil
}

// SuitableForEmotion reports whether the strategy lists the emotion label.
// Labels must match exactly.
func (s *RegulationStrategy) SuitableForEmotion(emotion string) bool {
	return slices.Contains(s.SuitableFor, emotion)
}
