package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// NextSequence atomically increments and returns the named counter. Row ids
// for products, orders, memberships and payment rows come from here so they
// stay small integers (the order-notes membership list and the PayU
// transaction id both embed them).
func NextSequence(ctx context.Context, name string) (int64, error) {
	collection := GetCollection("counters")

	filter := bson.D{{Key: "_id", Value: name}}
	update := bson.D{{Key: "$inc", Value: bson.D{{Key: "seq", Value: int64(1)}}}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc struct {
		Seq int64 `bson:"seq"`
	}
	if err := collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		return 0, err
	}
	return doc.Seq, nil
}
