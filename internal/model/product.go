package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog item tracked by the replenishment engine.
// BaseCost is the supplier unit cost before freight; the landed cost is
// derived at query time from purchase history (see service.CostResolver).
type Product struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SKU      string          `gorm:"uniqueIndex;not null"`
	Name     string          `gorm:"index;not null"`
	BaseCost decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// StockQuantity is only mutated by receipt commits and manual adjustments.
	StockQuantity  int        `gorm:"not null;default:0"`
	AlertThreshold int        `gorm:"not null;default:5"`
	SupplierID     *uuid.UUID `gorm:"type:uuid;index"`
	Active         bool       `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Supplier *Supplier `gorm:"foreignKey:SupplierID"`
}

// LowStock reports whether the product is at or below its alert threshold.
func (p *Product) LowStock() bool { return p.StockQuantity <= p.AlertThreshold }
