package service

import (
	"context"

	"stockpilot/internal/dto"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// DefaultBufferFactor pads the alert threshold when computing reorder
// quantities, so a replenished product lands above — not at — its threshold.
var DefaultBufferFactor = decimal.NewFromFloat(1.2)

// ReplenishmentPlanner composes the low-stock scan with supplier ranking
// into a single recommendation batch.
type ReplenishmentPlanner interface {
	Plan(ctx context.Context, bufferFactor decimal.Decimal) (*dto.ReplenishmentResponse, error)
}

type replenishmentPlanner struct {
	monitor      StockMonitor
	ranker       SupplierRanker
	historyLimit int
}

func NewReplenishmentPlanner(monitor StockMonitor, ranker SupplierRanker, historyLimit int) ReplenishmentPlanner {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &replenishmentPlanner{monitor: monitor, ranker: ranker, historyLimit: historyLimit}
}

// ReorderQuantity computes the recommended purchase quantity:
//
//	max(ceil(alertThreshold × bufferFactor) − stockQuantity, 1)
//
// The floor of 1 holds even when the threshold is zero or stock already
// exceeds the buffered threshold, so a recommendation is always actionable.
func ReorderQuantity(alertThreshold, stockQuantity int, bufferFactor decimal.Decimal) int {
	buffered := decimal.NewFromInt(int64(alertThreshold)).Mul(bufferFactor).Ceil().IntPart()
	qty := int(buffered) - stockQuantity
	if qty < 1 {
		qty = 1
	}
	return qty
}

// Plan returns one recommendation per low-stock product, in the low-stock
// scan's order, plus a batch-wide deduplicated supplier candidate list.
//
// A supplier lookup failure for one product does not abort the batch: that
// product simply contributes no candidates. A failed low-stock scan, by
// contrast, is a batch-level failure and surfaces as ErrAggregationFailed so
// callers can tell "store down" apart from "nothing to reorder".
func (p *replenishmentPlanner) Plan(ctx context.Context, bufferFactor decimal.Decimal) (*dto.ReplenishmentResponse, error) {
	if bufferFactor.LessThanOrEqual(decimal.Zero) {
		bufferFactor = DefaultBufferFactor
	}

	products, err := p.monitor.ScanLowStock(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ReplenishmentItem, 0, len(products))
	suppliers := make([]dto.SupplierCandidate, 0)
	seen := make(map[string]bool)

	for _, prod := range products {
		items = append(items, dto.ReplenishmentItem{
			ProductID:       prod.ID.String(),
			SKU:             prod.SKU,
			Name:            prod.Name,
			StockQuantity:   prod.StockQuantity,
			AlertThreshold:  prod.AlertThreshold,
			ReorderQuantity: ReorderQuantity(prod.AlertThreshold, prod.StockQuantity, bufferFactor),
		})

		candidates, err := p.ranker.RankSuppliers(ctx, prod.ID, p.historyLimit)
		if err != nil {
			// Partial-result resilience: one product's lookup failure must
			// not sink the whole batch.
			log.Warn().Err(err).Str("product_id", prod.ID.String()).Msg("supplier ranking failed, continuing batch")
			continue
		}
		for _, c := range candidates {
			if seen[c.SupplierID] {
				continue
			}
			seen[c.SupplierID] = true
			suppliers = append(suppliers, c)
		}
	}

	// No historical supplier across the entire batch: substitute active
	// suppliers so the recommendation is still actionable.
	if len(items) > 0 && len(suppliers) == 0 {
		fallback, err := p.ranker.FallbackSuppliers(ctx)
		if err != nil {
			return nil, err
		}
		suppliers = fallback
	}

	return &dto.ReplenishmentResponse{
		Items:        items,
		Suppliers:    suppliers,
		BufferFactor: bufferFactor,
	}, nil
}
