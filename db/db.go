package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection       *mongo.Collection
	RecipeCollection     *mongo.Collection
	IngredientCollection *mongo.Collection
	Client               *mongo.Client
)

// Init connects to MongoDB and wires the collection handles. Call once from
// main before the router starts serving.
func Init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGODB_DB")
	if dbName == "" {
		dbName = "plateful"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	Client, err = mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	UserCollection = Client.Database(dbName).Collection("users")
	RecipeCollection = Client.Database(dbName).Collection("recipes")
	IngredientCollection = Client.Database(dbName).Collection("ingredients")

	if err := EnsureIndexes(ctx); err != nil {
		log.Printf("Index creation failed: %v", err)
	}
}

// EnsureIndexes creates the indexes the query paths rely on:
//   - text index backing the catalog q parameter
//   - unique name_lower on ingredients, the only guard against two
//     concurrent requests racing to create the same ingredient name
//   - popularity+createdAt for trending sort
func EnsureIndexes(ctx context.Context) error {
	_, err := RecipeCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "title", Value: "text"},
			{Key: "description", Value: "text"},
			{Key: "instructions", Value: "text"},
		}},
		{Keys: bson.D{{Key: "popularity", Value: -1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "ingredients.ingredientid", Value: 1}}},
	})
	if err != nil {
		return err
	}

	_, err = IngredientCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name_lower", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
