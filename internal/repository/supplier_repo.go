package repository

import (
	"context"

	"stockpilot/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SupplierRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Supplier, error)
	// FindActive returns up to limit active suppliers, name ascending
	// (stable tie-break for the replenishment fallback).
	FindActive(ctx context.Context, limit int) ([]model.Supplier, error)
}

type supplierRepo struct{ db *gorm.DB }

func NewSupplierRepository(db *gorm.DB) SupplierRepository { return &supplierRepo{db: db} }

func (r *supplierRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Supplier, error) {
	var s model.Supplier
	err := r.db.WithContext(ctx).First(&s, id).Error
	return &s, err
}

func (r *supplierRepo) FindActive(ctx context.Context, limit int) ([]model.Supplier, error) {
	var suppliers []model.Supplier
	err := r.db.WithContext(ctx).
		Where("status = ?", model.SupplierActive).
		Order("name ASC").
		Limit(limit).
		Find(&suppliers).Error
	return suppliers, err
}
