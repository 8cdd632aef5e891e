package recipes

import (
	"time"

	"plateful/models"
)

// LineView is the flattened client-facing shape of one ingredient line.
type LineView struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Qty   float64 `json:"qty"`
	Unit  string  `json:"unit"`
	Notes string  `json:"notes"`
}

// RecipeSummary is the whitelisted projection served by the catalog.
// Nothing outside this struct ever reaches the client from a listing.
type RecipeSummary struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	Description        string     `json:"description,omitempty"`
	Cuisine            string     `json:"cuisine,omitempty"`
	Category           string     `json:"category,omitempty"`
	Images             []string   `json:"images"`
	Popularity         int64      `json:"popularity"`
	CreatedAt          time.Time  `json:"createdAt"`
	Diet               string     `json:"diet"`
	Ingredients        []LineView `json:"ingredients"`
	IngredientsPreview []string   `json:"ingredientsPreview"`
}

// RecipeDetail extends the summary with the fields a single-recipe read
// exposes.
type RecipeDetail struct {
	RecipeSummary
	Instructions string    `json:"instructions,omitempty"`
	CreatedBy    string    `json:"createdBy"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func flattenLines(lines []models.IngredientLine) []LineView {
	out := make([]LineView, 0, len(lines))
	for _, line := range lines {
		out = append(out, LineView{
			ID:    line.IngredientID.Hex(),
			Name:  line.Name,
			Qty:   line.Quantity,
			Unit:  line.Unit,
			Notes: line.Notes,
		})
	}
	return out
}

// Summarize projects a stored recipe into its catalog shape: flattened
// lines, the derived diet label, and a two-name ingredient preview.
func Summarize(rec models.Recipe, c Classifier) RecipeSummary {
	preview := []string{}
	for _, line := range rec.Ingredients {
		preview = append(preview, line.Name)
		if len(preview) == 2 {
			break
		}
	}

	images := rec.Images
	if images == nil {
		images = []string{}
	}

	return RecipeSummary{
		ID:                 rec.ID.Hex(),
		Title:              rec.Title,
		Description:        rec.Description,
		Cuisine:            rec.Cuisine,
		Category:           rec.Category,
		Images:             images,
		Popularity:         rec.Popularity,
		CreatedAt:          rec.CreatedAt,
		Diet:               c.Diet(rec.Ingredients),
		Ingredients:        flattenLines(rec.Ingredients),
		IngredientsPreview: preview,
	}
}

// Detail projects a stored recipe into the single-recipe shape.
func Detail(rec models.Recipe, c Classifier) RecipeDetail {
	return RecipeDetail{
		RecipeSummary: Summarize(rec, c),
		Instructions:  rec.Instructions,
		CreatedBy:     rec.CreatedBy,
		UpdatedAt:     rec.UpdatedAt,
	}
}
