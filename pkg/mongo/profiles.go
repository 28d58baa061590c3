package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"jpskating.in/store-api/pkg/models"
)

var ErrEmailExists = errors.New("email already exists")

func CreateProfile(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	profile.SetTimestamps()

	_, err := GetCollection("profiles").InsertOne(ctx, profile)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return profile, nil
}

func GetProfileByID(ctx context.Context, id string) (*models.Profile, error) {
	var profile models.Profile
	if err := GetCollection("profiles").FindOne(ctx, bson.D{{Key: "id", Value: id}}).Decode(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error) {
	var profile models.Profile
	if err := GetCollection("profiles").FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func UpdateProfile(ctx context.Context, id string, updates map[string]interface{}) (*models.Profile, error) {
	updates["updated_at"] = time.Now()
	set := bson.D{}
	for k, v := range updates {
		set = append(set, bson.E{Key: k, Value: v})
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var profile models.Profile
	err := GetCollection("profiles").FindOneAndUpdate(ctx,
		bson.D{{Key: "id", Value: id}},
		bson.D{{Key: "$set", Value: set}},
		opts,
	).Decode(&profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
