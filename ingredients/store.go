package ingredients

import (
	"context"
	"errors"

	"plateful/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements IngredientStore over the ingredients collection.
type MongoStore struct {
	Coll *mongo.Collection
}

func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{Coll: coll}
}

func (s *MongoStore) FindByIDsOrNames(ctx context.Context, ids []primitive.ObjectID, lowerNames []string) ([]models.Ingredient, error) {
	var or []bson.M
	if len(ids) > 0 {
		or = append(or, bson.M{"_id": bson.M{"$in": ids}})
	}
	if len(lowerNames) > 0 {
		or = append(or, bson.M{"name_lower": bson.M{"$in": lowerNames}})
	}
	if len(or) == 0 {
		return nil, nil
	}

	cursor, err := s.Coll.Find(ctx, bson.M{"$or": or})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.Ingredient
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateMany inserts the staged ingredients unordered. A BulkWriteException
// (e.g. a duplicate-key loss against a concurrent request) is not fatal:
// the records that did land are returned and the rest are silently absent,
// so the resolver drops only the lines that truly could not be resolved.
func (s *MongoStore) CreateMany(ctx context.Context, ingredients []models.Ingredient) ([]models.Ingredient, error) {
	docs := make([]interface{}, len(ingredients))
	for i, ing := range ingredients {
		docs[i] = ing
	}

	res, err := s.Coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil {
		var bwe mongo.BulkWriteException
		if !errors.As(err, &bwe) {
			return nil, err
		}
	}
	if res == nil {
		return nil, nil
	}

	inserted := make(map[primitive.ObjectID]bool, len(res.InsertedIDs))
	for _, id := range res.InsertedIDs {
		if oid, ok := id.(primitive.ObjectID); ok {
			inserted[oid] = true
		}
	}

	created := make([]models.Ingredient, 0, len(inserted))
	for _, ing := range ingredients {
		if inserted[ing.ID] {
			created = append(created, ing)
		}
	}
	return created, nil
}
