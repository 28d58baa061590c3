package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"jpskating.in/store-api/pkg/models"
)

// OrderWithItems joins an order with its physical line items for read paths.
// Membership purchases have no item rows; they surface through the notes.
type OrderWithItems struct {
	models.Order `bson:",inline"`
	Items        []models.OrderItem `json:"order_items" bson:"-"`
}

func CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	id, err := NextSequence(ctx, "orders")
	if err != nil {
		return nil, err
	}
	order.ID = id
	order.SetTimestamps()

	if _, err := GetCollection("orders").InsertOne(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// AddOrderItem appends an immutable line-item snapshot to an order.
func AddOrderItem(ctx context.Context, orderID, productID int64, quantity int, price float64) (*models.OrderItem, error) {
	id, err := NextSequence(ctx, "order_items")
	if err != nil {
		return nil, err
	}

	item := &models.OrderItem{
		ID:        id,
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  quantity,
		Price:     price,
		CreatedAt: time.Now(),
	}
	if _, err := GetCollection("order_items").InsertOne(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func GetOrderItems(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	cursor, err := GetCollection("order_items").Find(ctx, bson.D{{Key: "order_id", Value: orderID}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.OrderItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	if err := GetCollection("orders").FindOne(ctx, bson.D{{Key: "id", Value: id}}).Decode(&order); err != nil {
		return nil, err
	}
	return &order, nil
}

func GetOrderByNumber(ctx context.Context, orderNumber string) (*OrderWithItems, error) {
	var order models.Order
	err := GetCollection("orders").FindOne(ctx, bson.D{{Key: "order_number", Value: orderNumber}}).Decode(&order)
	if err != nil {
		return nil, err
	}

	items, err := GetOrderItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	return &OrderWithItems{Order: order, Items: items}, nil
}

func GetOrdersByUserID(ctx context.Context, userID string) ([]OrderWithItems, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := GetCollection("orders").Find(ctx, bson.D{{Key: "user_id", Value: userID}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}

	result := make([]OrderWithItems, 0, len(orders))
	for _, order := range orders {
		items, err := GetOrderItems(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, OrderWithItems{Order: order, Items: items})
	}
	return result, nil
}

func GetAllOrders(ctx context.Context) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := GetCollection("orders").Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus writes the admin-chosen status and optional comment.
func UpdateOrderStatus(ctx context.Context, id int64, status, comment string) (*models.Order, error) {
	set := bson.D{
		{Key: "status", Value: status},
		{Key: "updated_at", Value: time.Now()},
	}
	if comment != "" {
		set = append(set, bson.E{Key: "status_comment", Value: comment})
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var order models.Order
	err := GetCollection("orders").FindOneAndUpdate(ctx,
		bson.D{{Key: "id", Value: id}},
		bson.D{{Key: "$set", Value: set}},
		opts,
	).Decode(&order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// MarkOrderPaid flips the order to completed/confirmed after a successful
// payment and records the provider transaction id.
func MarkOrderPaid(ctx context.Context, id int64, txnID string) (*models.Order, error) {
	set := bson.D{
		{Key: "payment_status", Value: models.PaymentStatusCompleted},
		{Key: "status", Value: models.OrderStatusConfirmed},
		{Key: "payu_transaction_id", Value: txnID},
		{Key: "updated_at", Value: time.Now()},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var order models.Order
	err := GetCollection("orders").FindOneAndUpdate(ctx,
		bson.D{{Key: "id", Value: id}},
		bson.D{{Key: "$set", Value: set}},
		opts,
	).Decode(&order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func UpdateOrderPaymentStatus(ctx context.Context, id int64, paymentStatus string) (*models.Order, error) {
	set := bson.D{
		{Key: "payment_status", Value: paymentStatus},
		{Key: "updated_at", Value: time.Now()},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var order models.Order
	err := GetCollection("orders").FindOneAndUpdate(ctx,
		bson.D{{Key: "id", Value: id}},
		bson.D{{Key: "$set", Value: set}},
		opts,
	).Decode(&order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}
