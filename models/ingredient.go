package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Ingredient is the canonical, de-duplicated record for an ingredient name.
// Created lazily the first time a recipe references an unknown name; never
// mutated or deleted afterwards. NameLower is the case-insensitive dedup key
// and carries a unique index.
type Ingredient struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	NameLower string             `bson:"name_lower" json:"-"`
	Synonyms  []string           `bson:"synonyms,omitempty" json:"synonyms,omitempty"`
	Category  string             `bson:"category,omitempty" json:"category,omitempty"`
}

// IngredientLine is embedded in a Recipe: a reference to a canonical
// ingredient plus a denormalized copy of its name at resolution time.
// The denormalized name is never cascaded when the canonical record changes.
type IngredientLine struct {
	IngredientID primitive.ObjectID `bson:"ingredientid" json:"ingredientId"`
	Name         string             `bson:"name" json:"name"`
	Quantity     float64            `bson:"quantity" json:"quantity"`
	Unit         string             `bson:"unit" json:"unit"`
	Notes        string             `bson:"notes" json:"notes"`
}

// RawIngredientLine is the wire shape accepted on recipe create/update.
// Ingredient may be an existing ingredient id; Name a free-text name.
// Lines carrying neither are dropped during resolution, not rejected.
type RawIngredientLine struct {
	Ingredient string  `json:"ingredient"`
	Name       string  `json:"name"`
	Quantity   float64 `json:"qty"`
	Unit       string  `json:"unit"`
	Notes      string  `json:"notes"`
}
