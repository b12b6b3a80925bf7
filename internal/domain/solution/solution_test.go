package solution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolutionValidate(t *testing.T) {
	s := &Solution{Category: CategoryBusiness, Complexity: ComplexityAdvanced}
	assert.NoError(t, s.Validate())

	s.Category = "marketing"
	assert.ErrorIs(t, s.Validate(), ErrInvalidCategory)

	s.Category = CategoryCreative
	s.Complexity = "expert"
	assert.ErrorIs(t, s.Validate(), ErrInvalidComplexity)
}

func TestSolutionClone(t *testing.T) {
	orig := &Solution{
		Category:   CategoryTechnical,
		Complexity: ComplexityBeginner,
		KeySteps:   []string{"a", "b"},
		Resources:  []string{"docs"},
	}
	c := orig.Clone()
	c.KeySteps[0] = "changed"
	c.Resources = append(c.Resources, "more")

	assert.Equal(t, "a", orig.KeySteps[0])
	assert.Len(t, orig.Resources, 1)

	var nilSolution *Solution
	assert.Nil(t, nilSolution.Clone())
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		raw  string
		want Mode
	}{
		{"solver", ModeSolver},
		{"CODE", ModeCode},
		{" explain ", ModeExplain},
		{"", ModeSolver},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.raw)
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseMode("poem")
	assert.ErrorIs(t, err, ErrInvalidMode)
}
