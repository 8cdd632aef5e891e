package rdx

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"plateful/db"
	"plateful/globals"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var Conn *redis.Client

// Init dials Redis. Optional: when REDIS_URL is unset the catalog runs
// without view buffering and token caching.
func Init() {
	addr := os.Getenv("REDIS_URL")
	if addr == "" {
		log.Println("REDIS_URL not set; redis features disabled")
		return
	}
	Conn = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
}

func RdxSet(key, value string) error {
	return Conn.Set(globals.Ctx, key, value, 0).Err()
}

func RdxGet(key string) (string, error) {
	return Conn.Get(globals.Ctx, key).Result()
}

func RdxHset(hash, field, value string) error {
	return Conn.HSet(globals.Ctx, hash, field, value).Err()
}

func RdxHdel(hash, field string) (int64, error) {
	return Conn.HDel(globals.Ctx, hash, field).Result()
}

// IncrRecipeViews buffers one view for a recipe. Failures are swallowed:
// popularity is enrichment, never essential to the read path.
func IncrRecipeViews(recipeID string) {
	if Conn == nil {
		return
	}
	if err := Conn.Incr(globals.Ctx, "views:recipe:"+recipeID).Err(); err != nil {
		log.Println("Redis view incr error:", err)
	}
}

// FlushPopularity periodically folds buffered view counters into the Mongo
// popularity field, then drops the flushed keys.
func FlushPopularity() {
	if Conn == nil {
		return
	}
	ticker := time.NewTicker(30 * time.Second)
	for range ticker.C {
		keys, err := Conn.Keys(globals.Ctx, "views:recipe:*").Result()
		if err != nil {
			log.Println("Redis scan error:", err)
			continue
		}
		for _, key := range keys {
			parts := strings.Split(key, ":")
			if len(parts) != 3 {
				log.Println("Invalid view counter key:", key)
				continue
			}
			id, err := primitive.ObjectIDFromHex(parts[2])
			if err != nil {
				Conn.Del(globals.Ctx, key)
				continue
			}

			countStr, err := Conn.Get(globals.Ctx, key).Result()
			if err != nil {
				continue
			}
			count, err := strconv.ParseInt(countStr, 10, 64)
			if err != nil || count == 0 {
				Conn.Del(globals.Ctx, key)
				continue
			}

			_, err = db.RecipeCollection.UpdateOne(
				globals.Ctx,
				bson.M{"_id": id},
				bson.M{"$inc": bson.M{"popularity": count}},
			)
			if err != nil {
				log.Println("MongoDB popularity flush error:", err)
				continue
			}
			Conn.Del(globals.Ctx, key)
		}
	}
}
