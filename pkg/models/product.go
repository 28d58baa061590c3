package models

import (
	"fmt"
	"strings"
	"time"
)

// Product represents a catalog item in the skating store
type Product struct {
	ID            int64     `json:"id" bson:"id"`
	Name          string    `json:"name" bson:"name" validate:"required,min=2,max=200"`
	Description   string    `json:"description" bson:"description" validate:"max=2000"`
	Price         float64   `json:"price" bson:"price" validate:"required,gt=0"`
	OriginalPrice *float64  `json:"original_price,omitempty" bson:"original_price,omitempty"`
	Category      string    `json:"category" bson:"category" validate:"required,min=2,max=100"`
	ImageURL      string    `json:"image_url,omitempty" bson:"image_url,omitempty"`
	StockQuantity int       `json:"stock_quantity" bson:"stock_quantity" validate:"gte=0"`
	SKU           string    `json:"sku" bson:"sku" validate:"required,min=3,max=50"`
	IsActive      bool      `json:"is_active" bson:"is_active"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}

type CreateProductRequest struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	Price         float64  `json:"price" binding:"required,gt=0"`
	OriginalPrice *float64 `json:"original_price"`
	Category      string   `json:"category" binding:"required"`
	ImageURL      string   `json:"image_url"`
	StockQuantity int      `json:"stock_quantity" binding:"gte=0"`
	SKU           string   `json:"sku"`
	IsActive      *bool    `json:"is_active"`
}

// GenerateSKU derives a SKU from the category when the admin did not supply one.
func (req *CreateProductRequest) GenerateSKU() string {
	prefix := strings.ToUpper(strings.ReplaceAll(req.Category, " ", ""))
	if len(prefix) > 6 {
		prefix = prefix[:6]
	}
	return fmt.Sprintf("%s-%d", prefix, time.Now().Unix())
}

func (req *CreateProductRequest) ToProduct(id int64) *Product {
	now := time.Now()
	sku := req.SKU
	if sku == "" {
		sku = req.GenerateSKU()
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return &Product{
		ID:            id,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Category:      req.Category,
		ImageURL:      req.ImageURL,
		StockQuantity: req.StockQuantity,
		SKU:           sku,
		IsActive:      active,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (p *Product) IsInStock() bool {
	return p.StockQuantity > 0 && p.IsActive
}

func (p *Product) IsLowStock(threshold int) bool {
	return p.StockQuantity > 0 && p.StockQuantity <= threshold
}

func (p *Product) SetTimestamps() {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}
