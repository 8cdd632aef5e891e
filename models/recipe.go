package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Recipe struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	Instructions string             `bson:"instructions,omitempty" json:"instructions,omitempty"`
	Cuisine      string             `bson:"cuisine,omitempty" json:"cuisine,omitempty"`
	Category     string             `bson:"category,omitempty" json:"category,omitempty"`
	Ingredients  []IngredientLine   `bson:"ingredients" json:"ingredients"`
	Images       []string           `bson:"images" json:"images"`
	Popularity   int64              `bson:"popularity" json:"popularity"`
	CreatedBy    string             `bson:"createdBy" json:"createdBy"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
