package service

import (
	"context"

	"stockpilot/internal/dto"
	"stockpilot/internal/model"
	"stockpilot/internal/repository"

	"github.com/google/uuid"
)

const (
	// DefaultHistoryLimit is how many recent purchase lines are inspected
	// per product when ranking suppliers.
	DefaultHistoryLimit = 3

	// fallbackSupplierLimit caps the active-supplier substitution used when
	// an entire reorder batch has no historical supplier.
	fallbackSupplierLimit = 3

	CandidateFromHistory  = "history"
	CandidateFromFallback = "fallback"
)

// SupplierRanker proposes candidate suppliers for a product from its recent
// purchase history, with an active-supplier fallback for the batch level.
type SupplierRanker interface {
	// RankSuppliers returns suppliers seen in the product's most recent
	// purchase lines, deduplicated, most-recent-first.
	RankSuppliers(ctx context.Context, productID uuid.UUID, historyLimit int) ([]dto.SupplierCandidate, error)
	// FallbackSuppliers returns up to three active suppliers, name ascending.
	FallbackSuppliers(ctx context.Context) ([]dto.SupplierCandidate, error)
}

type supplierRanker struct {
	purchases repository.PurchaseRepository
	suppliers repository.SupplierRepository
}

func NewSupplierRanker(purchases repository.PurchaseRepository, suppliers repository.SupplierRepository) SupplierRanker {
	return &supplierRanker{purchases: purchases, suppliers: suppliers}
}

func (s *supplierRanker) RankSuppliers(ctx context.Context, productID uuid.UUID, historyLimit int) ([]dto.SupplierCandidate, error) {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}

	lines, err := s.purchases.FindRecentLinesByProduct(ctx, productID, historyLimit)
	if err != nil {
		return nil, aggregationFailed("rank suppliers", err)
	}

	seen := make(map[uuid.UUID]bool, len(lines))
	candidates := make([]dto.SupplierCandidate, 0, len(lines))
	for _, line := range lines {
		if line.Order == nil || line.Order.Supplier == nil {
			continue
		}
		sup := line.Order.Supplier
		if seen[sup.ID] {
			continue
		}
		seen[sup.ID] = true
		candidates = append(candidates, dto.SupplierCandidate{
			SupplierID: sup.ID.String(),
			Name:       sup.Name,
			Source:     CandidateFromHistory,
		})
	}
	return candidates, nil
}

func (s *supplierRanker) FallbackSuppliers(ctx context.Context) ([]dto.SupplierCandidate, error) {
	suppliers, err := s.suppliers.FindActive(ctx, fallbackSupplierLimit)
	if err != nil {
		return nil, aggregationFailed("fallback suppliers", err)
	}

	candidates := make([]dto.SupplierCandidate, 0, len(suppliers))
	for _, sup := range suppliers {
		if sup.Status != model.SupplierActive {
			continue
		}
		candidates = append(candidates, dto.SupplierCandidate{
			SupplierID: sup.ID.String(),
			Name:       sup.Name,
			Source:     CandidateFromFallback,
		})
	}
	return candidates, nil
}
