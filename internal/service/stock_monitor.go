package service

import (
	"context"

	"stockpilot/internal/model"
	"stockpilot/internal/repository"
)

// StockMonitor scans the catalog for products at or below their alert
// threshold. Pure read — an empty result is a valid, non-error outcome.
type StockMonitor interface {
	// ScanLowStock returns every low-stock product, lowest stock first.
	ScanLowStock(ctx context.Context) ([]model.Product, error)
}

type stockMonitor struct {
	products repository.ProductRepository
}

func NewStockMonitor(products repository.ProductRepository) StockMonitor {
	return &stockMonitor{products: products}
}

func (s *stockMonitor) ScanLowStock(ctx context.Context) ([]model.Product, error) {
	products, err := s.products.FindBelowThreshold(ctx)
	if err != nil {
		return nil, aggregationFailed("scan low stock", err)
	}
	return products, nil
}
