package ingredients

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"plateful/db"
	"plateful/models"
	"plateful/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetIngredients lists canonical ingredients, optionally prefix-filtered by
// ?q= for autocomplete in the recipe editor.
func GetIngredients(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		filter = utils.RegexFilter("name", q)
	}

	limit := int64(50)
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 200 {
		limit = int64(v)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name_lower", Value: 1}}).
		SetLimit(limit)

	cursor, err := db.IngredientCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch ingredients")
		return
	}
	defer cursor.Close(ctx)

	ingredients := []models.Ingredient{}
	if err := cursor.All(ctx, &ingredients); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch ingredients")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, ingredients)
}

// GetIngredient returns a single canonical ingredient by id.
func GetIngredient(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid ingredient id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var ing models.Ingredient
	if err := db.IngredientCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&ing); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Ingredient not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, ing)
}
