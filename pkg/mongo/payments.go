package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"jpskating.in/store-api/pkg/models"
)

func CreatePaymentTransaction(ctx context.Context, txn *models.PaymentTransaction) (*models.PaymentTransaction, error) {
	id, err := NextSequence(ctx, "payment_transactions")
	if err != nil {
		return nil, err
	}
	txn.ID = id
	now := time.Now()
	txn.CreatedAt = now
	txn.UpdatedAt = now

	if _, err := GetCollection("payment_transactions").InsertOne(ctx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

func GetPaymentTransaction(ctx context.Context, transactionID string) (*models.PaymentTransaction, error) {
	var txn models.PaymentTransaction
	err := GetCollection("payment_transactions").FindOne(ctx, bson.D{{Key: "transaction_id", Value: transactionID}}).Decode(&txn)
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func UpdatePaymentTransactionStatus(ctx context.Context, transactionID, status string, providerResponse map[string]string) error {
	set := bson.D{
		{Key: "status", Value: status},
		{Key: "updated_at", Value: time.Now()},
	}
	if providerResponse != nil {
		set = append(set, bson.E{Key: "payu_response", Value: providerResponse})
	}

	_, err := GetCollection("payment_transactions").UpdateOne(ctx,
		bson.D{{Key: "transaction_id", Value: transactionID}},
		bson.D{{Key: "$set", Value: set}},
	)
	return err
}

// Payment options (admin-configured provider credentials)

func GetPaymentOptions(ctx context.Context) ([]models.PaymentOption, error) {
	cursor, err := GetCollection("payment_options").Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var opts []models.PaymentOption
	if err := cursor.All(ctx, &opts); err != nil {
		return nil, err
	}
	return opts, nil
}

func GetPaymentOptionByProvider(ctx context.Context, provider string) (*models.PaymentOption, error) {
	var option models.PaymentOption
	err := GetCollection("payment_options").FindOne(ctx, bson.D{{Key: "provider", Value: provider}}).Decode(&option)
	if err != nil {
		return nil, err
	}
	return &option, nil
}

func UpsertPaymentOption(ctx context.Context, option *models.PaymentOption) (*models.PaymentOption, error) {
	option.UpdatedAt = time.Now()
	if option.CreatedAt.IsZero() {
		option.CreatedAt = option.UpdatedAt
	}
	if option.ID == 0 {
		id, err := NextSequence(ctx, "payment_options")
		if err != nil {
			return nil, err
		}
		option.ID = id
	}

	opts := options.Replace().SetUpsert(true)
	_, err := GetCollection("payment_options").ReplaceOne(ctx,
		bson.D{{Key: "provider", Value: option.Provider}},
		option,
		opts,
	)
	if err != nil {
		return nil, err
	}
	return option, nil
}

func DeletePaymentOption(ctx context.Context, provider string) error {
	res, err := GetCollection("payment_options").DeleteOne(ctx, bson.D{{Key: "provider", Value: provider}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
