package recipes

import (
	"context"
	"log"
	"net/http"
	"time"

	"plateful/db"
	"plateful/models"
	"plateful/rdx"
	"plateful/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetRecipes serves the catalog listing: filters, sort, optional
// pagination, and the summary projection. The count and the data query run
// against the identical effective filter.
func GetRecipes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	params := ParseListParams(r.URL.Query())
	filter := params.EffectiveFilter()

	total, err := db.RecipeCollection.CountDocuments(ctx, filter)
	if err != nil {
		log.Printf("Recipe count failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to count recipes")
		return
	}

	opts := options.Find().SetSort(params.Sort())
	if skip, limit, paginated := params.Window(DefaultCatalogConfig); paginated {
		opts = opts.SetSkip(skip).SetLimit(limit)
	}

	cursor, err := db.RecipeCollection.Find(ctx, filter, opts)
	if err != nil {
		log.Printf("Recipe find failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch recipes")
		return
	}
	defer cursor.Close(ctx)

	var rows []models.Recipe
	if err := cursor.All(ctx, &rows); err != nil {
		log.Printf("Recipe decode failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch recipes")
		return
	}

	data := make([]RecipeSummary, 0, len(rows))
	for _, rec := range rows {
		data = append(data, Summarize(rec, DefaultClassifier))
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"data": data,
		"meta": BuildMeta(total, params, DefaultCatalogConfig),
	})
}

// GetRecipe serves one enriched recipe and buffers a view for the
// popularity counter.
func GetRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid recipe id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var recipe models.Recipe
	if err := db.RecipeCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&recipe); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}

	rdx.IncrRecipeViews(recipe.ID.Hex())

	utils.RespondWithJSON(w, http.StatusOK, Detail(recipe, DefaultClassifier))
}
