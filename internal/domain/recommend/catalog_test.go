package recommend

import (
	"errors"
	"testing"

	"github.com/phrazzld/attune-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalog(t *testing.T) {
	t.Parallel()

	valid := domain.RegulationStrategy{
		ID:         "a",
		Name:       "A",
		Category:   domain.CategorySocial,
		Complexity: domain.ComplexitySimple,
		Duration:   domain.DurationShort,
	}

	tests := []struct {
		name    string
		input   []domain.RegulationStrategy
		wantErr error
	}{
		{"empty", nil, nil},
		{"valid", []domain.RegulationStrategy{valid}, nil},
		{"duplicate id", []domain.RegulationStrategy{valid, valid}, ErrDuplicateStrategy},
		{"missing name", []domain.RegulationStrategy{{ID: "b", Category: domain.CategorySocial, Complexity: domain.ComplexitySimple}}, domain.ErrEmptyStrategyName},
		{"bad category", []domain.RegulationStrategy{{ID: "c", Name: "C", Category: "music", Complexity: domain.ComplexitySimple}}, domain.ErrInvalidCategory},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := NewCatalog(tc.input)
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tc.input), c.Len())
		})
	}
}

func TestCatalog_IsReadOnly(t *testing.T) {
	t.Parallel()

	input := []domain.RegulationStrategy{{
		ID:          "a",
		Name:        "A",
		Steps:       []string{"one"},
		SuitableFor: []string{"Sad"},
		Category:    domain.CategorySocial,
		Complexity:  domain.ComplexitySimple,
	}}
	c := MustCatalog(input)

	input[0].Steps[0] = "changed"
	input[0].SuitableFor[0] = "Happy"

	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, []string{"one"}, got.Steps)
	assert.Equal(t, []string{"Sad"}, got.SuitableFor)

	list := c.Strategies()
	list[0].Name = "changed"
	got, _ = c.Get("a")
	assert.Equal(t, "A", got.Name)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestDefaultCatalog(t *testing.T) {
	t.Parallel()

	c := DefaultCatalog()
	require.Greater(t, c.Len(), 10)

	categories := map[domain.Category]bool{}
	withEvidence := 0
	engine := NewEngine(c)
	for _, s := range c.Strategies() {
		categories[s.Category] = true
		assert.NotEmpty(t, s.Steps, s.ID)
		assert.NotEmpty(t, s.SuitableFor, s.ID)
		assert.NotEqual(t, "varies", s.Duration.TimeRequired(), s.ID)
		if engine.hasEvidence(s.EvidenceBase) {
			withEvidence++
		}
	}
	for _, cat := range domain.Categories {
		assert.True(t, categories[cat], "no strategy in category %s", cat)
	}
	assert.GreaterOrEqual(t, withEvidence, MaxEvidence)
}

func TestNilCatalog(t *testing.T) {
	t.Parallel()

	var c *Catalog
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Strategies())
	_, ok := c.Get("x")
	assert.False(t, ok)
}
