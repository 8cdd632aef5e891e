package ingredients

import (
	"context"
	"strings"

	"plateful/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IngredientStore is the slice of the ingredient collection the resolver
// needs. FindByIDsOrNames must answer both buckets in a single round trip;
// CreateMany must use unordered-insert semantics so one bad record does not
// block the rest.
type IngredientStore interface {
	FindByIDsOrNames(ctx context.Context, ids []primitive.ObjectID, lowerNames []string) ([]models.Ingredient, error)
	CreateMany(ctx context.Context, ingredients []models.Ingredient) ([]models.Ingredient, error)
}

type Resolver struct {
	Store IngredientStore
}

func NewResolver(store IngredientStore) *Resolver {
	return &Resolver{Store: store}
}

// Resolve maps raw ingredient lines to canonical ingredient lines.
//
// Each raw line is matched against the ingredient collection by id or by
// case-insensitive name; unmatched names are created in one unordered bulk
// insert. Lines with neither a valid id nor a non-empty name are silently
// dropped, as are lines whose id matches nothing. Output preserves the
// relative order of surviving input lines, and each resolved line carries
// the STORED canonical name, never the caller's spelling.
//
// Only store-level failures return an error; the caller must then fail the
// whole recipe write; there is no partial-success contract at the recipe
// level.
func (rs *Resolver) Resolve(ctx context.Context, raw []models.RawIngredientLine) ([]models.IngredientLine, error) {
	if len(raw) == 0 {
		return []models.IngredientLine{}, nil
	}

	// Partition into id and name buckets. A line with a valid id never
	// falls through to name matching.
	var ids []primitive.ObjectID
	var lowerNames []string
	seenID := make(map[primitive.ObjectID]bool)
	seenName := make(map[string]bool)

	for _, line := range raw {
		if oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(line.Ingredient)); err == nil {
			if !seenID[oid] {
				seenID[oid] = true
				ids = append(ids, oid)
			}
			continue
		}
		name := strings.TrimSpace(line.Name)
		if name == "" {
			continue
		}
		lower := strings.ToLower(name)
		if !seenName[lower] {
			seenName[lower] = true
			lowerNames = append(lowerNames, lower)
		}
	}

	if len(ids) == 0 && len(lowerNames) == 0 {
		return []models.IngredientLine{}, nil
	}

	// One lookup for both buckets, never one query per line.
	found, err := rs.Store.FindByIDsOrNames(ctx, ids, lowerNames)
	if err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]models.Ingredient, len(found))
	byName := make(map[string]models.Ingredient, len(found))
	for _, ing := range found {
		byID[ing.ID] = ing
		byName[strings.ToLower(ing.Name)] = ing
	}

	// Stage creations for unseen names, de-duplicated by lower-cased name
	// within the batch. The original spelling of the first occurrence
	// becomes the canonical name.
	var staged []models.Ingredient
	stagedSet := make(map[string]bool)
	for _, line := range raw {
		if _, err := primitive.ObjectIDFromHex(strings.TrimSpace(line.Ingredient)); err == nil {
			continue
		}
		name := strings.TrimSpace(line.Name)
		if name == "" {
			continue
		}
		lower := strings.ToLower(name)
		if _, ok := byName[lower]; ok || stagedSet[lower] {
			continue
		}
		stagedSet[lower] = true
		staged = append(staged, models.Ingredient{
			ID:        primitive.NewObjectID(),
			Name:      name,
			NameLower: lower,
		})
	}

	if len(staged) > 0 {
		created, err := rs.Store.CreateMany(ctx, staged)
		if err != nil {
			return nil, err
		}
		for _, ing := range created {
			byName[strings.ToLower(ing.Name)] = ing
		}
	}

	// Re-walk the original sequence, in order, emitting resolved lines.
	resolved := make([]models.IngredientLine, 0, len(raw))
	for _, line := range raw {
		var ing models.Ingredient
		var ok bool

		if oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(line.Ingredient)); err == nil {
			ing, ok = byID[oid]
		} else if name := strings.TrimSpace(line.Name); name != "" {
			ing, ok = byName[strings.ToLower(name)]
		}
		if !ok {
			continue
		}

		resolved = append(resolved, models.IngredientLine{
			IngredientID: ing.ID,
			Name:         ing.Name,
			Quantity:     line.Quantity,
			Unit:         strings.TrimSpace(line.Unit),
			Notes:        strings.TrimSpace(line.Notes),
		})
	}

	return resolved, nil
}
