package admin

import (
	"context"
	"log"
	"net/http"
	"time"

	"plateful/db"
	"plateful/models"
	"plateful/recipes"
	"plateful/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetStats returns dashboard counts and the current top trending recipes.
// Each sub-query failure degrades to a zero/empty value instead of failing
// the request; the stats are enrichment, not essential data.
func GetStats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	count := func(coll *mongo.Collection) int64 {
		n, err := coll.CountDocuments(ctx, bson.M{})
		if err != nil {
			log.Printf("Stats count failed: %v", err)
			return 0
		}
		return n
	}

	trending := []recipes.RecipeSummary{}
	opts := options.Find().
		SetSort(bson.D{{Key: "popularity", Value: -1}, {Key: "createdAt", Value: -1}}).
		SetLimit(5)
	cursor, err := db.RecipeCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Printf("Stats trending query failed: %v", err)
	} else {
		defer cursor.Close(ctx)
		var rows []models.Recipe
		if err := cursor.All(ctx, &rows); err != nil {
			log.Printf("Stats trending decode failed: %v", err)
		} else {
			for _, rec := range rows {
				trending = append(trending, recipes.Summarize(rec, recipes.DefaultClassifier))
			}
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"recipes":     count(db.RecipeCollection),
		"ingredients": count(db.IngredientCollection),
		"users":       count(db.UserCollection),
		"trending":    trending,
	})
}
