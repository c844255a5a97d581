package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	SupplierActive   = "active"
	SupplierInactive = "inactive"
)

// Supplier is a purchasing counterparty. Status gates the fallback used by
// the replenishment planner when a product has no purchase history.
type Supplier struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"index;not null"`
	Status      string    `gorm:"not null;default:'active'"` // "active" | "inactive"
	ContactName *string
	Email       *string
	Phone       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Products []Product `gorm:"foreignKey:SupplierID"`
}
