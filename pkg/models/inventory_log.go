package models

import "time"

// InventoryLog records a stock adjustment for the audit trail
type InventoryLog struct {
	ID             int64     `json:"id" bson:"id"`
	ProductID      int64     `json:"product_id" bson:"product_id" validate:"required"`
	QuantityChange int       `json:"quantity_change" bson:"quantity_change"` // positive or negative
	Reason         string    `json:"reason,omitempty" bson:"reason,omitempty" validate:"max=500"`
	CreatedBy      string    `json:"created_by,omitempty" bson:"created_by,omitempty"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}

func (il *InventoryLog) SetTimestamp() {
	if il.CreatedAt.IsZero() {
		il.CreatedAt = time.Now()
	}
}

func (il *InventoryLog) IsIncrease() bool {
	return il.QuantityChange > 0
}

func (il *InventoryLog) IsDecrease() bool {
	return il.QuantityChange < 0
}
