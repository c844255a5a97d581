package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase order lifecycle. An order transitions pending → received exactly
// once; cancelled is the other terminal state and never commits stock.
const (
	OrderPending   = "pending"
	OrderReceived  = "received"
	OrderCancelled = "cancelled"
)

// PurchaseOrder groups the line items bought from one supplier in one go.
// Freight is the shared shipping charge for the whole order; it is never
// stored per line — allocation is derived on demand (service.AllocateFreight).
type PurchaseOrder struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SupplierID uuid.UUID       `gorm:"type:uuid;not null;index"`
	SubTotal   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Freight    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Status     string          `gorm:"not null;default:'pending';index"`
	ReceivedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Supplier *Supplier      `gorm:"foreignKey:SupplierID"`
	Items    []PurchaseItem `gorm:"foreignKey:OrderID"`
}

// PurchaseItem is one product line within a purchase order. Amount is the
// line value (quantity × unit cost) used as the freight allocation base.
type PurchaseItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity  int             `gorm:"not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt time.Time

	Order   *PurchaseOrder `gorm:"foreignKey:OrderID"`
	Product *Product       `gorm:"foreignKey:ProductID"`
}
