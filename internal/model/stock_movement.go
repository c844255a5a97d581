package model

import (
	"time"

	"github.com/google/uuid"
)

// StockMovement records every stock change applied by the engine.
// Created automatically when a purchase order is received.
type StockMovement struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Kind        string    `gorm:"not null"` // "purchase_receipt" | "manual_adjustment"
	Quantity    int       `gorm:"not null"` // positive = inbound, negative = outbound
	StockBefore int       `gorm:"not null"`
	StockAfter  int       `gorm:"not null"`
	Reason      string
	ReferenceID *uuid.UUID `gorm:"type:uuid"` // purchase order id when Kind is purchase_receipt
	CreatedAt   time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
