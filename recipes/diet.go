package recipes

import (
	"strings"

	"plateful/models"
)

// DefaultNonVegKeywords drive the vegetarian classification. Matching is
// substring, not whole-word: "eggplant" trips over "egg".
var DefaultNonVegKeywords = []string{
	"chicken", "mutton", "fish", "egg", "prawn", "shrimp",
	"beef", "pork", "lamb", "meat", "crab", "bacon", "ham",
	"turkey", "duck", "squid", "octopus", "anchovy", "gelatin",
}

// Classifier derives a vegetarian/non-vegetarian label from ingredient
// lines at read time. The label is never persisted.
type Classifier struct {
	Keywords []string
}

func NewClassifier(keywords []string) Classifier {
	return Classifier{Keywords: keywords}
}

var DefaultClassifier = NewClassifier(DefaultNonVegKeywords)

// IsVegetarian reports false if any line's name contains any keyword,
// case-insensitively. An empty or nil line list is vegetarian (fail-open).
func (c Classifier) IsVegetarian(lines []models.IngredientLine) bool {
	for _, line := range lines {
		name := strings.ToLower(line.Name)
		if name == "" {
			continue
		}
		for _, kw := range c.Keywords {
			if strings.Contains(name, kw) {
				return false
			}
		}
	}
	return true
}

// Diet returns the client-facing label.
func (c Classifier) Diet(lines []models.IngredientLine) string {
	if c.IsVegetarian(lines) {
		return "veg"
	}
	return "nonveg"
}
