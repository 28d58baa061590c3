package models

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Order statuses. No transition graph is enforced; admin actions and payment
// callbacks write statuses directly, as the storefront always has.
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

// ShippingAddress is the snapshot captured at checkout submission.
type ShippingAddress struct {
	Name    string `json:"name" bson:"name"`
	Address string `json:"address" bson:"address"`
	City    string `json:"city" bson:"city"`
	State   string `json:"state" bson:"state"`
	Zip     string `json:"zip" bson:"zip"`
	Phone   string `json:"phone" bson:"phone"`
}

// Order represents a customer order
type Order struct {
	ID                int64            `json:"id" bson:"id"`
	UserID            string           `json:"user_id,omitempty" bson:"user_id,omitempty"`
	OrderNumber       string           `json:"order_number" bson:"order_number"`
	Status            string           `json:"status" bson:"status"`
	TotalAmount       float64          `json:"total_amount" bson:"total_amount"`
	PaymentMethod     string           `json:"payment_method,omitempty" bson:"payment_method,omitempty"`
	PaymentStatus     string           `json:"payment_status" bson:"payment_status"`
	PayuTransactionID string           `json:"payu_transaction_id,omitempty" bson:"payu_transaction_id,omitempty"`
	ShippingAddress   *ShippingAddress `json:"shipping_address,omitempty" bson:"shipping_address,omitempty"`
	Notes             string           `json:"notes,omitempty" bson:"notes,omitempty"`
	CustomerEmail     string           `json:"customer_email,omitempty" bson:"customer_email,omitempty"`
	CustomerPhone     string           `json:"customer_phone,omitempty" bson:"customer_phone,omitempty"`
	StatusComment     string           `json:"status_comment,omitempty" bson:"status_comment,omitempty"`
	CreatedAt         time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at" bson:"updated_at"`
}

// OrderItem is an immutable snapshot of quantity and price at purchase time.
// Membership purchases never produce OrderItem rows; they live in the order
// notes instead.
type OrderItem struct {
	ID        int64     `json:"id" bson:"id"`
	OrderID   int64     `json:"order_id" bson:"order_id"`
	ProductID int64     `json:"product_id" bson:"product_id"`
	Quantity  int       `json:"quantity" bson:"quantity"`
	Price     float64   `json:"price" bson:"price"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

func (o *Order) SetTimestamps() {
	now := time.Now()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	o.UpdatedAt = now
}

func (o *Order) HasBeenPaid() bool {
	return o.PaymentStatus == PaymentStatusCompleted
}

func (o *Order) CanBeCancelled() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusProcessing
}

// GenerateOrderNumber returns "ORD-" plus the current epoch milliseconds.
// Not collision proof within a millisecond; accepted as a known weakness.
func GenerateOrderNumber() string {
	return fmt.Sprintf("ORD-%d", time.Now().UnixMilli())
}

// membershipNotesRe matches the machine-parseable prefix embedded in order
// notes: MEMBERSHIPS:[3,7]
var membershipNotesRe = regexp.MustCompile(`^MEMBERSHIPS:\[([0-9,\s]*)\]`)

// ComposeOrderNotes serializes purchased membership plan ids ahead of the
// shopper's free-text instructions. With no membership ids the notes are the
// free text unchanged.
func ComposeOrderNotes(membershipIDs []int64, freeText string) string {
	if len(membershipIDs) == 0 {
		return freeText
	}
	parts := make([]string, len(membershipIDs))
	for i, id := range membershipIDs {
		parts[i] = strconv.FormatInt(id, 10)
	}
	notes := fmt.Sprintf("MEMBERSHIPS:[%s]", strings.Join(parts, ","))
	if freeText != "" {
		notes += ". " + freeText
	}
	return notes
}

// CheckoutRequest is the checkout form submission. Field-level validation
// happens in the handler so every missing field is reported in one pass.
type CheckoutRequest struct {
	SessionID     string `json:"session_id"`
	UserID        string `json:"user_id"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	Zip           string `json:"zip"`
	PaymentMethod string `json:"payment_method"`
	Notes         string `json:"notes"`
}

// ShippingSnapshot builds the address snapshot stored on the order.
func (r *CheckoutRequest) ShippingSnapshot() *ShippingAddress {
	return &ShippingAddress{
		Name:    r.Name,
		Address: r.Address,
		City:    r.City,
		State:   r.State,
		Zip:     r.Zip,
		Phone:   r.Phone,
	}
}

// ParseMembershipIDs extracts the membership id list from order notes.
// Notes without the prefix parse to an empty list.
func ParseMembershipIDs(notes string) []int64 {
	m := membershipNotesRe.FindStringSubmatch(notes)
	if m == nil {
		return nil
	}
	var ids []int64
	for _, part := range strings.Split(m[1], ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
