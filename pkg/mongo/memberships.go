package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"jpskating.in/store-api/pkg/global"
	"jpskating.in/store-api/pkg/models"
)

// GetActiveMemberships returns plans currently offered on the storefront.
func GetActiveMemberships(ctx context.Context) ([]models.Membership, error) {
	collection := GetCollection("memberships")

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := collection.Find(ctx, bson.D{{Key: "is_active", Value: true}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var plans []models.Membership
	if err := cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// GetAllMemberships returns every plan, retired ones included, for admin.
func GetAllMemberships(ctx context.Context) ([]models.Membership, error) {
	collection := GetCollection("memberships")

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var plans []models.Membership
	if err := cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

func GetMembershipByID(ctx context.Context, id int64) (*models.Membership, error) {
	var plan models.Membership
	if err := GetCollection("memberships").FindOne(ctx, bson.D{{Key: "id", Value: id}}).Decode(&plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func CreateMembership(ctx context.Context, plan *models.Membership) (*models.Membership, error) {
	id, err := NextSequence(ctx, "memberships")
	if err != nil {
		return nil, err
	}
	plan.ID = id
	now := time.Now()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	if _, err := GetCollection("memberships").InsertOne(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func UpdateMembership(ctx context.Context, id int64, updates map[string]interface{}) (*models.Membership, error) {
	updates["updated_at"] = time.Now()
	set := bson.D{}
	for k, v := range updates {
		set = append(set, bson.E{Key: k, Value: v})
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var plan models.Membership
	err := GetCollection("memberships").FindOneAndUpdate(ctx,
		bson.D{{Key: "id", Value: id}},
		bson.D{{Key: "$set", Value: set}},
		opts,
	).Decode(&plan)
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func DeleteMembership(ctx context.Context, id int64) error {
	res, err := GetCollection("memberships").DeleteOne(ctx, bson.D{{Key: "id", Value: id}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func countMemberships() (int64, error) {
	ctx, cancel := global.GetDefaultTimer()
	defer cancel()
	return GetCollection("memberships").CountDocuments(ctx, bson.D{})
}
