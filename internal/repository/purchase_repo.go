package repository

import (
	"context"
	"time"

	"stockpilot/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PurchaseRepository is the single access path for purchase orders and their
// line items. Both the read side (cost aggregation, supplier ranking) and the
// write side (receipt transition) go through it so behavior cannot diverge.
type PurchaseRepository interface {
	FindOrderByID(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error)
	// FindRecentLinesByProduct returns the newest limit purchase lines for a
	// product with the owning order and its supplier preloaded.
	FindRecentLinesByProduct(ctx context.Context, productID uuid.UUID, limit int) ([]model.PurchaseItem, error)
	// FindLinesByProduct returns every historical line for a product,
	// oldest first, with the owning order (and sibling lines) preloaded.
	FindLinesByProduct(ctx context.Context, productID uuid.UUID) ([]model.PurchaseItem, error)

	// SetOrderStatusTx conditionally moves an order from guardStatus to
	// status inside tx. Returns the number of rows updated: 0 means the
	// guard did not hold and the caller must treat the transition as lost.
	SetOrderStatusTx(tx *gorm.DB, id uuid.UUID, status, guardStatus string, receivedAt *time.Time) (int64, error)

	DB() *gorm.DB
}

type purchaseRepo struct{ db *gorm.DB }

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository { return &purchaseRepo{db: db} }

func (r *purchaseRepo) DB() *gorm.DB { return r.db }

func (r *purchaseRepo) FindOrderByID(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	var o model.PurchaseOrder
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			// Stable iteration order — the rounding residual lands on the
			// last line, so "last" must mean the same line on every read.
			return db.Order("created_at ASC, id ASC")
		}).
		First(&o, id).Error
	return &o, err
}

func (r *purchaseRepo) FindRecentLinesByProduct(ctx context.Context, productID uuid.UUID, limit int) ([]model.PurchaseItem, error) {
	var lines []model.PurchaseItem
	err := r.db.WithContext(ctx).
		Preload("Order.Supplier").
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Limit(limit).
		Find(&lines).Error
	return lines, err
}

func (r *purchaseRepo) FindLinesByProduct(ctx context.Context, productID uuid.UUID) ([]model.PurchaseItem, error) {
	var lines []model.PurchaseItem
	err := r.db.WithContext(ctx).
		Preload("Order.Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Where("product_id = ?", productID).
		Order("created_at ASC").
		Find(&lines).Error
	return lines, err
}

func (r *purchaseRepo) SetOrderStatusTx(tx *gorm.DB, id uuid.UUID, status, guardStatus string, receivedAt *time.Time) (int64, error) {
	updates := map[string]interface{}{"status": status}
	if receivedAt != nil {
		updates["received_at"] = receivedAt
	}
	res := tx.Model(&model.PurchaseOrder{}).
		Where("id = ? AND status = ?", id, guardStatus).
		Updates(updates)
	return res.RowsAffected, res.Error
}
