package recipes

import (
	"testing"

	"plateful/models"

	"github.com/stretchr/testify/assert"
)

func lines(names ...string) []models.IngredientLine {
	out := make([]models.IngredientLine, len(names))
	for i, n := range names {
		out[i] = models.IngredientLine{Name: n}
	}
	return out
}

func TestIsVegetarian(t *testing.T) {
	c := DefaultClassifier

	assert.False(t, c.IsVegetarian(lines("Chicken", "Rice")))
	assert.True(t, c.IsVegetarian(lines("Rice", "Peas")))
	assert.False(t, c.IsVegetarian(lines("rice", "FISH sauce")))
}

func TestIsVegetarianFailsOpenOnEmpty(t *testing.T) {
	c := DefaultClassifier
	assert.True(t, c.IsVegetarian(nil))
	assert.True(t, c.IsVegetarian([]models.IngredientLine{}))
	assert.True(t, c.IsVegetarian([]models.IngredientLine{{Name: ""}}))
}

// Documents current, possibly unintended, behavior: matching is substring,
// not whole-word, so "eggplant" trips over the "egg" keyword.
func TestEggplantMisclassifiedAsNonVeg(t *testing.T) {
	c := DefaultClassifier
	assert.False(t, c.IsVegetarian(lines("Eggplant", "Olive Oil")))
	assert.Equal(t, "nonveg", c.Diet(lines("eggplant")))
}

func TestDietLabels(t *testing.T) {
	c := DefaultClassifier
	assert.Equal(t, "nonveg", c.Diet(lines("Chicken", "Rice")))
	assert.Equal(t, "veg", c.Diet(lines("Rice", "Peas")))
}

func TestClassifierHonorsAlternateKeywords(t *testing.T) {
	c := NewClassifier([]string{"tofu"})
	assert.False(t, c.IsVegetarian(lines("Tofu", "Rice")))
	assert.True(t, c.IsVegetarian(lines("Chicken")), "keyword list is configuration, not a constant")
}
