package models

import (
	"fmt"
	"time"
)

// Cart models for Redis session-based storage

// CartProduct is the snapshot of a product (or membership plan) taken when
// the shopper adds it, so the cart survives later catalog edits.
type CartProduct struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image,omitempty"`
	Category string  `json:"category,omitempty"`
}

type CartItem struct {
	ID           string      `json:"id"` // productID-size-color
	Product      CartProduct `json:"product"`
	Quantity     int         `json:"quantity"`
	Size         string      `json:"size,omitempty"`
	Color        string      `json:"color,omitempty"`
	IsMembership bool        `json:"is_membership,omitempty"`
	AddedAt      string      `json:"added_at,omitempty"`
}

type Cart struct {
	SessionID   string      `json:"session_id"`
	Items       []*CartItem `json:"items"`
	ItemCount   int         `json:"item_count"`
	Total       float64     `json:"total"`
	LastUpdated string      `json:"last_updated,omitempty"`
}

type AddToCartRequest struct {
	Product      CartProduct `json:"product" binding:"required"`
	Quantity     int         `json:"quantity" binding:"required,min=1"`
	Size         string      `json:"size"`
	Color        string      `json:"color"`
	IsMembership bool        `json:"is_membership"`
}

// UpdateCartItemRequest carries the new quantity for a cart line. Zero or
// negative values remove the line rather than being rejected.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartItemID builds the composite line-item identity. Two adds of the same
// product in the same size and color merge into a single line.
func CartItemID(productID int64, size, color string) string {
	if size == "" {
		size = "default"
	}
	if color == "" {
		color = "default"
	}
	return fmt.Sprintf("%d-%s-%s", productID, size, color)
}

func NewCart(sessionID string) *Cart {
	return &Cart{
		SessionID: sessionID,
		Items:     []*CartItem{},
	}
}

func (c *Cart) findItem(itemID string) *CartItem {
	for _, item := range c.Items {
		if item.ID == itemID {
			return item
		}
	}
	return nil
}

// AddItem merges into an existing line with the same composite id or appends
// a new one. Returns the affected line.
func (c *Cart) AddItem(product CartProduct, quantity int, size, color string, isMembership bool) *CartItem {
	itemID := CartItemID(product.ID, size, color)
	if existing := c.findItem(itemID); existing != nil {
		existing.Quantity += quantity
		c.Recalculate()
		return existing
	}

	item := &CartItem{
		ID:           itemID,
		Product:      product,
		Quantity:     quantity,
		Size:         size,
		Color:        color,
		IsMembership: isMembership,
		AddedAt:      time.Now().UTC().Format(time.RFC3339),
	}
	c.Items = append(c.Items, item)
	c.Recalculate()
	return item
}

// RemoveItem removes the line with the given id. Returns the removed line,
// or nil if it was not present.
func (c *Cart) RemoveItem(itemID string) *CartItem {
	for i, item := range c.Items {
		if item.ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.Recalculate()
			return item
		}
	}
	return nil
}

// UpdateQuantity sets the quantity of a line; quantity <= 0 removes it.
func (c *Cart) UpdateQuantity(itemID string, quantity int) bool {
	if quantity <= 0 {
		return c.RemoveItem(itemID) != nil
	}
	item := c.findItem(itemID)
	if item == nil {
		return false
	}
	item.Quantity = quantity
	c.Recalculate()
	return true
}

// Clear empties the cart. Returns false when the cart was already empty so
// callers can skip the "cart cleared" notification.
func (c *Cart) Clear() bool {
	if len(c.Items) == 0 {
		return false
	}
	c.Items = []*CartItem{}
	c.Recalculate()
	return true
}

// ProductLines lists the physical product lines, in cart order. Only these
// become order item rows; membership lines travel on the order notes.
func (c *Cart) ProductLines() []*CartItem {
	var lines []*CartItem
	for _, item := range c.Items {
		if !item.IsMembership {
			lines = append(lines, item)
		}
	}
	return lines
}

// MembershipIDs lists the plan ids of membership lines, in cart order.
func (c *Cart) MembershipIDs() []int64 {
	var ids []int64
	for _, item := range c.Items {
		if item.IsMembership {
			ids = append(ids, item.Product.ID)
		}
	}
	return ids
}

// Recalculate refreshes item count and total. The total is the plain sum of
// snapshot price times quantity; tax and shipping are not charged here.
func (c *Cart) Recalculate() {
	c.ItemCount = 0
	c.Total = 0
	for _, item := range c.Items {
		c.ItemCount += item.Quantity
		c.Total += item.Product.Price * float64(item.Quantity)
	}
	c.LastUpdated = time.Now().UTC().Format(time.RFC3339)
}
