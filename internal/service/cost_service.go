package service

import (
	"context"

	"stockpilot/internal/dto"
	"stockpilot/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// CostResolver combines a product's base cost with its historical allocated
// freight into a true (landed) cost figure.
//
// AllocatedFreight is the lifetime sum across every purchase line referencing
// the product — it is NOT divided by cumulative quantity received, so
// TrueCost is a cumulative landed-cost total rather than a per-unit figure.
// Confirm intended semantics before reusing this number elsewhere.
type CostResolver interface {
	TrueCost(ctx context.Context, productID uuid.UUID) (*dto.TrueCostResponse, error)
}

type costResolver struct {
	products  repository.ProductRepository
	purchases repository.PurchaseRepository
}

func NewCostResolver(products repository.ProductRepository, purchases repository.PurchaseRepository) CostResolver {
	return &costResolver{products: products, purchases: purchases}
}

// TrueCost re-derives each owning order's allocation map on demand — there
// is no persisted allocation cache. The walk is indexed by product_id and is
// safe to run concurrently for different products.
func (s *costResolver) TrueCost(ctx context.Context, productID uuid.UUID) (*dto.TrueCostResponse, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, notFound("true cost: product", err)
	}

	lines, err := s.purchases.FindLinesByProduct(ctx, productID)
	if err != nil {
		return nil, aggregationFailed("true cost: purchase history", err)
	}

	allocated := decimal.Zero
	for _, line := range lines {
		if line.Order == nil {
			continue
		}
		allocations, err := AllocateFreight(line.Order)
		if err != nil {
			// Drift must never be silently swallowed: fail loudly in the
			// logs, keep serving the best-effort value.
			log.Error().Err(err).
				Str("order_id", line.OrderID.String()).
				Str("product_id", productID.String()).
				Msg("freight allocation invariant violated")
		}
		allocated = allocated.Add(allocations[line.ID])
	}

	return &dto.TrueCostResponse{
		ProductID:        product.ID.String(),
		SKU:              product.SKU,
		BaseCost:         product.BaseCost,
		AllocatedFreight: allocated,
		TrueCost:         product.BaseCost.Add(allocated),
	}, nil
}
