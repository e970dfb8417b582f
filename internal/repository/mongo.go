package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Santo1997/summer-sage-server/internal/model"
)

// insertIfAbsent upserts doc with $setOnInsert so the lookup and the insert
// happen in one server-side step. When a document already matches filter it
// is decoded into existing and created is false.
func insertIfAbsent(ctx context.Context, coll *mongo.Collection, filter, doc, existing interface{}) (bool, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.Before)

	err := coll.FindOneAndUpdate(ctx, filter, bson.M{"$setOnInsert": doc}, opts).Decode(existing)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

func toUpdateResult(res *mongo.UpdateResult) *model.UpdateResult {
	out := &model.UpdateResult{
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}
	if id, ok := res.UpsertedID.(primitive.ObjectID); ok {
		out.UpsertedID = &id
	}
	return out
}
