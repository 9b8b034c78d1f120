package recommend

import (
	"errors"
	"fmt"

	"github.com/phrazzld/attune-api/internal/domain"
)

// ErrDuplicateStrategy is returned when two catalog entries share an ID.
var ErrDuplicateStrategy = errors.New("duplicate strategy ID")

// Catalog is a read-only, ordered table of regulation strategies. It is safe
// for concurrent use once built.
type Catalog struct {
	strategies []domain.RegulationStrategy
	index      map[string]int
}

// NewCatalog validates every strategy and builds a catalog that keeps the
// given order. The input slice is copied.
func NewCatalog(strategies []domain.RegulationStrategy) (*Catalog, error) {
	c := &Catalog{
		strategies: make([]domain.RegulationStrategy, 0, len(strategies)),
		index:      make(map[string]int, len(strategies)),
	}

	for i := range strategies {
		s := strategies[i]
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i, err)
		}
		if _, exists := c.index[s.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateStrategy, s.ID)
		}
		s.Steps = append([]string(nil), s.Steps...)
		s.SuitableFor = append([]string(nil), s.SuitableFor...)
		c.index[s.ID] = len(c.strategies)
		c.strategies = append(c.strategies, s)
	}

	return c, nil
}

// MustCatalog is like NewCatalog but panics on invalid input. It is meant for
// package-level tables.
func MustCatalog(strategies []domain.RegulationStrategy) *Catalog {
	c, err := NewCatalog(strategies)
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of strategies.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.strategies)
}

// Strategies returns a copy of the catalog in catalog order.
func (c *Catalog) Strategies() []domain.RegulationStrategy {
	if c == nil {
		return []domain.RegulationStrategy{}
	}
	out := make([]domain.RegulationStrategy, len(c.strategies))
	copy(out, c.strategies)
	return out
}

// Get looks a strategy up by ID.
func (c *Catalog) Get(id string) (domain.RegulationStrategy, bool) {
	if c == nil {
		return domain.RegulationStrategy{}, false
	}
	i, ok := c.index[id]
	if !ok {
		return domain.RegulationStrategy{}, false
	}
	return c.strategies[i], true
}

// DefaultCatalog returns the built-in strategy table.
func DefaultCatalog() *Catalog {
	return MustCatalog(defaultStrategies())
}

func defaultStrategies() []domain.RegulationStrategy {
	return []domain.RegulationStrategy{
		{
			ID:          "box-breathing",
			Name:        "Box Breathing",
			Description: "A paced breathing pattern that slows the heart rate and settles the nervous system.",
			Steps: []string{
				"Breathe in through your nose for a count of 4.",
				"Hold your breath for a count of 4.",
				"Breathe out slowly for a count of 4.",
				"Hold again for a count of 4, then repeat for several rounds.",
			},
			SuitableFor:  []string{"Anxious", "Stressed", "Overwhelmed", "Angry"},
			Category:     domain.CategoryPhysical,
			Complexity:   domain.ComplexitySimple,
			Duration:     domain.DurationShort,
			EvidenceBase: "Paced breathing is recommended by the American Psychological Association for acute stress.",
		},
		{
			ID:          "progressive-muscle-relaxation",
			Name:        "Progressive Muscle Relaxation",
			Description: "Tense and release muscle groups one at a time to let go of physical tension.",
			Steps: []string{
				"Sit or lie down somewhere comfortable.",
				"Starting with your feet, tense the muscles for five seconds.",
				"Release and notice the difference for ten seconds.",
				"Work upwards through legs, stomach, hands, arms, shoulders and face.",
			},
			SuitableFor:  []string{"Anxious", "Stressed", "Angry", "Restless"},
			Category:     domain.CategoryPhysical,
			Complexity:   domain.ComplexityModerate,
			Duration:     domain.DurationMedium,
			EvidenceBase: "Described by the Mayo Clinic as an effective relaxation technique.",
		},
		{
			ID:          "brisk-walk",
			Name:        "Brisk Walk",
			Description: "A short burst of movement to discharge tension and lift mood.",
			Steps: []string{
				"Step outside or find a corridor you can walk along.",
				"Walk at a pace that raises your breathing a little.",
				"Notice five things you can see along the way.",
			},
			SuitableFor:  []string{"Angry", "Frustrated", "Sad", "Restless"},
			Category:     domain.CategoryPhysical,
			Complexity:   domain.ComplexitySimple,
			Duration:     domain.DurationMedium,
			EvidenceBase: "Regular physical activity improves mood according to the World Health Organization.",
		},
		{
			ID:          "cognitive-reframing",
			Name:        "Cognitive Reframing",
			Description: "Examine an upsetting thought and look for a more balanced way to see the situation.",
			Steps: []string{
				"Write down the thought that is bothering you.",
				"List the evidence for and against it.",
				"Write a more balanced alternative thought.",
				"Notice how your feeling changes.",
			},
			SuitableFor:  []string{"Anxious", "Sad", "Frustrated", "Overwhelmed"},
			Category:     domain.CategoryCognitive,
			Complexity:   domain.ComplexityModerate,
			Duration:     domain.DurationMedium,
			EvidenceBase: "A core technique of cognitive behavioural therapy endorsed by the NHS.",
		},
		{
			ID:          "worry-time",
			Name:        "Scheduled Worry Time",
			Description: "Postpone worries to a fixed daily slot so they take up less of the day.",
			Steps: []string{
				"Pick a 15 minute slot at the same time each day.",
				"When a worry comes up, jot it down and save it for later.",
				"During worry time, go through the list and plan any next steps.",
			},
			SuitableFor:  []string{"Anxious", "Overwhelmed"},
			Category:     domain.CategoryCognitive,
			Complexity:   domain.ComplexityModerate,
			Duration:     domain.DurationLong,
			EvidenceBase: "Stimulus control approach from worry research.",
		},
		{
			ID:          "task-chunking",
			Name:        "Task Chunking",
			Description: "Break a large task into small, concrete steps and start with the easiest one.",
			Steps: []string{
				"Write the task at the top of a page.",
				"Split it into steps that take less than ten minutes each.",
				"Do the first step now and tick it off.",
			},
			SuitableFor:  []string{"Overwhelmed", "Frustrated", "Stressed"},
			Category:     domain.CategoryCognitive,
			Complexity:   domain.ComplexitySimple,
			Duration:     domain.DurationShort,
			EvidenceBase: "Common study-skills practice.",
		},
		{
			ID:          "reach-out",
			Name:        "Reach Out to Someone",
			Description: "Share how you feel with a friend, family member or mentor.",
			Steps: []string{
				"Think of someone you trust.",
				"Send a message or call them.",
				"Tell them briefly how you are feeling and what would help.",
			},
			SuitableFor:  []string{"Sad", "Lonely", "Anxious"},
			Category:     domain.CategorySocial,
			Complexity:   domain.ComplexitySimple,
			Duration:     domain.DurationShort,
			EvidenceBase: "Social support is a protective factor identified by the National Institute of Mental Health.",
		},
		{
			ID:          "assertive-conversation",
			Name:        "Assertive Conversation",
			Description: "Plan and hold a calm conversation about what is bothering you.",
			Steps: []string{
				"Describe the situation using facts only.",
				"Say how it made you feel using \"I\" statements.",
				"Ask clearly for what you need.",
				"Listen to the other person's view.",
			},
			SuitableFor:  []string{"Angry", "Frustrated"},
			Category:     domain.CategorySocial,
			Complexity:   domain.ComplexityAdvanced,
			Duration:     domain.DurationMedium,
			EvidenceBase: "Communication skills training used in conflict resolution programmes.",
		},
		{
			ID:          "five-senses-grounding",
			Name:        "5-4-3-2-1 Grounding",
			Description: "Anchor yourself in the present by naming what your senses notice.",
			Steps: []string{
				"Name five things you can see.",
				"Name four things you can touch.",
				"Name three things you can hear.",
				"Name two things you can smell.",
				"Name one thing you can taste.",
			},
			SuitableFor:  []string{"Anxious", "Overwhelmed", "Stressed"},
			Category:     domain.CategoryMindfulness,
			Complexity:   domain.ComplexitySimple,
			Duration:     domain.DurationShort,
			EvidenceBase: "Grounding technique used in trauma-informed care.",
		},
		{
			ID:          "body-scan",
			Name:        "Body Scan Meditation",
			Description: "Move your attention slowly through the body and notice sensations without judging them.",
			Steps: []string{
				"Lie down or sit comfortably and close your eyes.",
				"Bring attention to your toes and notice any sensation.",
				"Move attention gradually up to the top of your head.",
				"Whenever your mind wanders, gently return to the body.",
			},
			SuitableFor:  []string{"Stressed", "Restless", "Sad"},
			Category:     domain.CategoryMindfulness,
			Complexity:   domain.ComplexityModerate,
			Duration:     domain.DurationLong,
			EvidenceBase: "Part of mindfulness-based stress reduction studied at Harvard Medical School.",
		},
		{
			ID:          "expressive-writing",
			Name:        "Expressive Writing",
			Description: "Write freely about what you are feeling for a few minutes without editing.",
			Steps: []string{
				"Set a timer for ten minutes.",
				"Write continuously about the feeling and what caused it.",
				"Do not worry about spelling or grammar.",
				"Read it back and note anything you learned.",
			},
			SuitableFor:  []string{"Sad", "Frustrated", "Angry", "Confused"},
			Category:     domain.CategoryCreative,
			Complexity:   domain.ComplexitySimple,
			Duration:     domain.DurationMedium,
			EvidenceBase: "Expressive writing research by Pennebaker and colleagues.",
		},
		{
			ID:          "gratitude-list",
			Name:        "Gratitude List",
			Description: "Note three things that went well today and why.",
			Steps: []string{
				"Write down three things that went well.",
				"For each, write one sentence about why it happened.",
			},
			SuitableFor:  []string{"Sad", "Discouraged"},
			Category:     domain.CategoryCognitive,
			Complexity:   domain.ComplexitySimple,
			Duration:     domain.DurationShort,
			EvidenceBase: "Positive psychology exercise.",
		},
	}
}
