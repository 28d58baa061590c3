package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"jpskating.in/store-api/pkg/global"
	"jpskating.in/store-api/pkg/models"
)

// GetActiveProducts returns the storefront catalog, newest first.
func GetActiveProducts(ctx context.Context) ([]models.Product, error) {
	collection := GetCollection("products")

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := collection.Find(ctx, bson.D{{Key: "is_active", Value: true}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetAllProducts returns every product, inactive included, for the admin
// back-office.
func GetAllProducts(ctx context.Context) ([]models.Product, error) {
	collection := GetCollection("products")

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func GetProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	collection := GetCollection("products")

	filter := bson.D{
		{Key: "category", Value: category},
		{Key: "is_active", Value: true},
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	collection := GetCollection("products")

	var product models.Product
	if err := collection.FindOne(ctx, bson.D{{Key: "id", Value: id}}).Decode(&product); err != nil {
		return nil, err
	}
	return &product, nil
}

func CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	id, err := NextSequence(ctx, "products")
	if err != nil {
		return nil, err
	}

	product := req.ToProduct(id)
	if _, err := GetCollection("products").InsertOne(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct applies a partial update and returns the updated document.
// Immutable fields must be stripped by the caller.
func UpdateProduct(ctx context.Context, id int64, updates map[string]interface{}) (*models.Product, error) {
	collection := GetCollection("products")

	updates["updated_at"] = time.Now()
	set := bson.D{}
	for k, v := range updates {
		set = append(set, bson.E{Key: k, Value: v})
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var product models.Product
	err := collection.FindOneAndUpdate(ctx,
		bson.D{{Key: "id", Value: id}},
		bson.D{{Key: "$set", Value: set}},
		opts,
	).Decode(&product)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func DeleteProduct(ctx context.Context, id int64) (*models.Product, error) {
	collection := GetCollection("products")

	var product models.Product
	if err := collection.FindOneAndDelete(ctx, bson.D{{Key: "id", Value: id}}).Decode(&product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProductStock sets the absolute stock level and returns the product
// as it was before the write, so the caller can log the delta.
func UpdateProductStock(ctx context.Context, id int64, newQuantity int) (*models.Product, error) {
	collection := GetCollection("products")

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "stock_quantity", Value: newQuantity},
		{Key: "updated_at", Value: time.Now()},
	}}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)
	var before models.Product
	err := collection.FindOneAndUpdate(ctx, bson.D{{Key: "id", Value: id}}, update, opts).Decode(&before)
	if err != nil {
		return nil, err
	}
	return &before, nil
}

func countProducts() (int64, error) {
	ctx, cancel := global.GetDefaultTimer()
	defer cancel()
	return GetCollection("products").CountDocuments(ctx, bson.D{})
}
