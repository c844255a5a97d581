package dto

import "github.com/shopspring/decimal"

// TrueCostResponse is the landed-cost record for one product.
// AllocatedFreight is the lifetime sum of the product's freight shares across
// every received purchase order — a cumulative total, not a per-unit figure.
type TrueCostResponse struct {
	ProductID        string          `json:"product_id"`
	SKU              string          `json:"sku"`
	BaseCost         decimal.Decimal `json:"base_cost"`
	AllocatedFreight decimal.Decimal `json:"allocated_freight"`
	TrueCost         decimal.Decimal `json:"true_cost"`
}
