package recipes

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"plateful/db"
	"plateful/filemgr"
	"plateful/ingredients"
	"plateful/models"
	"plateful/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var resolver *ingredients.Resolver

// Init wires the handlers to the live collections. Call after db.Init.
func Init() {
	resolver = ingredients.NewResolver(ingredients.NewMongoStore(db.IngredientCollection))
}

// recipePayload is the write shape for create and update. Pointer fields
// distinguish "absent, leave alone" from "present, overwrite" on partial
// updates; an explicit empty string clears the stored value.
type recipePayload struct {
	Title         *string                    `json:"title"`
	Description   *string                    `json:"description"`
	Instructions  *string                    `json:"instructions"`
	Cuisine       *string                    `json:"cuisine"`
	Category      *string                    `json:"category"`
	Ingredients   []models.RawIngredientLine `json:"ingredients"`
	hasLines      bool
	replaceImages bool
	images        []string
}

// parsePayload accepts either a JSON body or a multipart form (the upload
// path). Returns ok=false after having answered the request.
func parsePayload(w http.ResponseWriter, r *http.Request) (recipePayload, bool) {
	var p recipePayload

	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			http.Error(w, "Failed to parse form", http.StatusBadRequest)
			return p, false
		}

		form := r.MultipartForm.Value
		strField := func(key string) *string {
			if vals, ok := form[key]; ok && len(vals) > 0 {
				v := vals[0]
				return &v
			}
			return nil
		}
		p.Title = strField("title")
		p.Description = strField("description")
		p.Instructions = strField("instructions")
		p.Cuisine = strField("cuisine")
		p.Category = strField("category")
		p.replaceImages = r.FormValue("replaceImages") == "true"

		if raw := strField("ingredients"); raw != nil {
			p.hasLines = true
			if *raw != "" {
				if err := json.Unmarshal([]byte(*raw), &p.Ingredients); err != nil {
					http.Error(w, "Invalid ingredients payload", http.StatusBadRequest)
					return p, false
				}
			}
		}

		images, ok := filemgr.SaveRecipeImages(w, r, "images")
		if !ok {
			return p, false
		}
		p.images = images
		return p, true
	}

	var body struct {
		recipePayload
		IngredientsRaw json.RawMessage `json:"ingredients"`
		ReplaceImages  bool            `json:"replaceImages"`
		Images         []string        `json:"images"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return p, false
	}
	p = body.recipePayload
	p.replaceImages = body.ReplaceImages
	p.images = body.Images
	if body.IngredientsRaw != nil {
		p.hasLines = true
		if err := json.Unmarshal(body.IngredientsRaw, &p.Ingredients); err != nil {
			http.Error(w, "Invalid ingredients payload", http.StatusBadRequest)
			return p, false
		}
	}
	return p, true
}

// CreateRecipe resolves the ingredient list first and only then persists
// the recipe; a resolver failure fails the whole create.
func CreateRecipe(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	p, ok := parsePayload(w, r)
	if !ok {
		return
	}

	if p.Title == nil || strings.TrimSpace(*p.Title) == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Title is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	lines, err := resolver.Resolve(ctx, p.Ingredients)
	if err != nil {
		log.Printf("Ingredient resolution failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to resolve ingredients")
		return
	}

	now := time.Now()
	recipe := models.Recipe{
		ID:          primitive.NewObjectID(),
		Title:       strings.TrimSpace(*p.Title),
		Ingredients: lines,
		Images:      p.images,
		Popularity:  0,
		CreatedBy:   utils.GetUserIDFromRequest(r),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if p.Description != nil {
		recipe.Description = *p.Description
	}
	if p.Instructions != nil {
		recipe.Instructions = *p.Instructions
	}
	if p.Cuisine != nil {
		recipe.Cuisine = *p.Cuisine
	}
	if p.Category != nil {
		recipe.Category = *p.Category
	}
	if recipe.Images == nil {
		recipe.Images = []string{}
	}

	if _, err := db.RecipeCollection.InsertOne(ctx, recipe); err != nil {
		log.Printf("Recipe insert failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "DB insert failed")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, Detail(recipe, DefaultClassifier))
}

// UpdateRecipe overwrites only the fields present in the payload. Images
// are appended unless replaceImages is set; an ingredients key present in
// the payload re-resolves the full line list.
func UpdateRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid recipe id")
		return
	}

	p, ok := parsePayload(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	set := bson.M{"updatedAt": time.Now()}
	if p.Title != nil {
		if strings.TrimSpace(*p.Title) == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "Title cannot be empty")
			return
		}
		set["title"] = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Instructions != nil {
		set["instructions"] = *p.Instructions
	}
	if p.Cuisine != nil {
		set["cuisine"] = *p.Cuisine
	}
	if p.Category != nil {
		set["category"] = *p.Category
	}

	if p.hasLines {
		lines, err := resolver.Resolve(ctx, p.Ingredients)
		if err != nil {
			log.Printf("Ingredient resolution failed: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to resolve ingredients")
			return
		}
		set["ingredients"] = lines
	}

	update := bson.M{"$set": set}
	if len(p.images) > 0 {
		if p.replaceImages {
			set["images"] = p.images
		} else {
			update["$push"] = bson.M{"images": bson.M{"$each": p.images}}
		}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Recipe
	err = db.RecipeCollection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}
	if err != nil {
		log.Printf("Recipe update failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update recipe")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, Detail(updated, DefaultClassifier))
}

// DeleteRecipe removes a recipe by id.
func DeleteRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid recipe id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	err = db.RecipeCollection.FindOneAndDelete(ctx, bson.M{"_id": id}).Err()
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}
	if err != nil {
		log.Printf("Recipe delete failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete recipe")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
