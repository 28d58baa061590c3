package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"jpskating.in/store-api/pkg/models"
)

func CreateInventoryLog(ctx context.Context, entry *models.InventoryLog) (*models.InventoryLog, error) {
	id, err := NextSequence(ctx, "inventory_logs")
	if err != nil {
		return nil, err
	}
	entry.ID = id
	entry.SetTimestamp()

	if _, err := GetCollection("inventory_logs").InsertOne(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func GetInventoryLogsByProduct(ctx context.Context, productID int64) ([]models.InventoryLog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := GetCollection("inventory_logs").Find(ctx, bson.D{{Key: "product_id", Value: productID}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []models.InventoryLog
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}
