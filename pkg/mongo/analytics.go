package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"jpskating.in/store-api/pkg/models"
)

type SalesBucket struct {
	Day        string  `json:"day" bson:"_id"`
	OrderCount int     `json:"order_count" bson:"order_count"`
	Revenue    float64 `json:"revenue" bson:"revenue"`
}

type SalesSummary struct {
	Buckets     []SalesBucket `json:"buckets"`
	TotalOrders int           `json:"total_orders"`
	TotalSales  float64       `json:"total_sales"`
}

// GetSalesSummary aggregates paid orders per day over the given window.
func GetSalesSummary(ctx context.Context, from, to time.Time) (*SalesSummary, error) {
	collection := GetCollection("orders")

	pipeline := bson.A{
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "payment_status", Value: models.PaymentStatusCompleted},
			{Key: "created_at", Value: bson.D{
				{Key: "$gte", Value: from},
				{Key: "$lt", Value: to},
			}},
		}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{
				{Key: "$dateToString", Value: bson.D{
					{Key: "format", Value: "%Y-%m-%d"},
					{Key: "date", Value: "$created_at"},
				}},
			}},
			{Key: "order_count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$total_amount"}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var buckets []SalesBucket
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, err
	}

	summary := &SalesSummary{Buckets: buckets}
	for _, b := range buckets {
		summary.TotalOrders += b.OrderCount
		summary.TotalSales += b.Revenue
	}
	return summary, nil
}

type TopProduct struct {
	ProductID int64   `json:"product_id" bson:"_id"`
	Name      string  `json:"name" bson:"name"`
	UnitsSold int     `json:"units_sold" bson:"units_sold"`
	Revenue   float64 `json:"revenue" bson:"revenue"`
}

// GetTopProducts ranks physical products by units sold across all orders.
// Membership purchases never appear here; they have no order_items rows.
func GetTopProducts(ctx context.Context, limit int) ([]TopProduct, error) {
	collection := GetCollection("order_items")

	pipeline := bson.A{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$product_id"},
			{Key: "units_sold", Value: bson.D{{Key: "$sum", Value: "$quantity"}}},
			{Key: "revenue", Value: bson.D{{Key: "$sum", Value: bson.D{
				{Key: "$multiply", Value: bson.A{"$price", "$quantity"}},
			}}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "units_sold", Value: -1}}}},
		bson.D{{Key: "$limit", Value: limit}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "products"},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "id"},
			{Key: "as", Value: "product"},
		}}},
		bson.D{{Key: "$addFields", Value: bson.D{
			{Key: "name", Value: bson.D{{Key: "$first", Value: "$product.name"}}},
		}}},
		bson.D{{Key: "$project", Value: bson.D{{Key: "product", Value: 0}}}},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var top []TopProduct
	if err := cursor.All(ctx, &top); err != nil {
		return nil, err
	}
	return top, nil
}

type MembershipStat struct {
	MembershipID int64  `json:"membership_id" bson:"_id"`
	Name         string `json:"name" bson:"name"`
	Total        int    `json:"total_instances" bson:"total"`
	Active       int    `json:"active_instances" bson:"active"`
}

// GetMembershipStats counts subscription instances per plan, with the
// currently-running subset derived from the wall clock, not the stored flag.
func GetMembershipStats(ctx context.Context) ([]MembershipStat, error) {
	collection := GetCollection("user_memberships")

	now := time.Now()
	pipeline := bson.A{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$membership_id"},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "active", Value: bson.D{{Key: "$sum", Value: bson.D{
				{Key: "$cond", Value: bson.A{
					bson.D{{Key: "$and", Value: bson.A{
						bson.D{{Key: "$lte", Value: bson.A{"$start_date", now}}},
						bson.D{{Key: "$gt", Value: bson.A{"$end_date", now}}},
					}}},
					1,
					0,
				}},
			}}}},
		}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "memberships"},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "id"},
			{Key: "as", Value: "plan"},
		}}},
		bson.D{{Key: "$addFields", Value: bson.D{
			{Key: "name", Value: bson.D{{Key: "$first", Value: "$plan.name"}}},
		}}},
		bson.D{{Key: "$project", Value: bson.D{{Key: "plan", Value: 0}}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "total", Value: -1}}}},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var stats []MembershipStat
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}
