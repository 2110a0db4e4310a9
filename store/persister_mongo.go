package store

import (
	"context"
	"time"

	"github.com/proteuswear/storefront-api/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPersister keeps try-on session records in a Mongo collection, one
// document per session.
type MongoPersister struct {
	collection *mongo.Collection
}

func NewMongoPersister(collection *mongo.Collection) *MongoPersister {
	return &MongoPersister{collection: collection}
}

func (p *MongoPersister) Put(ctx context.Context, record models.TryOnSessionRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := p.collection.ReplaceOne(ctx,
		bson.M{"session_id": record.SessionID},
		record,
		options.Replace().SetUpsert(true))
	return err
}

func (p *MongoPersister) Delete(ctx context.Context, sessionID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := p.collection.DeleteOne(ctx, bson.M{"session_id": sessionID})
	return err
}
