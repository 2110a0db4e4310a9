package store

import (
	"context"
	"time"

	"github.com/proteuswear/storefront-api/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FetchTryOnHistory returns the session's archived try-on records, newest
// first.
func FetchTryOnHistory(ctx context.Context, collection *mongo.Collection, sessionID string) ([]models.TryOn, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(50)
	cursor, err := collection.Find(ctx, bson.M{"session_id": sessionID}, opts)
	if err != nil {
		return nil, err
	}

	records := []models.TryOn{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
