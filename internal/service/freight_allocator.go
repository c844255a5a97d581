package service

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"stockpilot/internal/model"
)

// allocationEpsilon is the tolerated per-line rounding noise. A residual
// within epsilon × lineCount is folded into the last line; anything larger
// signals corrupted order data (sub_total ≠ sum of line amounts) and is
// reported as ErrAllocationDrift.
var allocationEpsilon = decimal.NewFromFloat(0.01)

// AllocateFreight distributes an order's freight charge across its line
// items proportionally to each line's value share:
//
//	allocated = line.amount / order.sub_total × order.freight
//
// When sub_total is zero (all lines free samples) the charge is split
// equally. Each share is rounded to the currency's minor unit and the
// rounding residual is assigned to the last line in stable item order, so
// the allocations always sum to exactly order.freight.
//
// Pure function: no persistence, callers decide whether to cache results.
// On drift the best-effort (uncorrected) allocations are still returned
// alongside ErrAllocationDrift so reads can degrade gracefully.
func AllocateFreight(order *model.PurchaseOrder) (map[uuid.UUID]decimal.Decimal, error) {
	allocations := make(map[uuid.UUID]decimal.Decimal, len(order.Items))
	if len(order.Items) == 0 {
		if order.Freight.IsZero() {
			return allocations, nil
		}
		return allocations, ErrAllocationDrift
	}

	lineCount := decimal.NewFromInt(int64(len(order.Items)))
	equalSplit := order.SubTotal.IsZero()

	sum := decimal.Zero
	for _, line := range order.Items {
		var allocated decimal.Decimal
		if equalSplit {
			allocated = order.Freight.Div(lineCount).Round(2)
		} else {
			allocated = line.Amount.Div(order.SubTotal).Mul(order.Freight).Round(2)
		}
		allocations[line.ID] = allocated
		sum = sum.Add(allocated)
	}

	residual := order.Freight.Sub(sum)
	if residual.Abs().GreaterThan(allocationEpsilon.Mul(lineCount)) {
		return allocations, ErrAllocationDrift
	}

	if !residual.IsZero() {
		last := order.Items[len(order.Items)-1].ID
		allocations[last] = allocations[last].Add(residual)
	}
	return allocations, nil
}
