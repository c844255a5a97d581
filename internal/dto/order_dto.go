package dto

import "github.com/shopspring/decimal"

// FreightAllocationLine is one line's share of the order's freight charge.
type FreightAllocationLine struct {
	LineID    string          `json:"line_id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Amount    decimal.Decimal `json:"amount"`
	Allocated decimal.Decimal `json:"allocated_freight"`
}

type FreightAllocationResponse struct {
	OrderID  string                  `json:"order_id"`
	SubTotal decimal.Decimal         `json:"sub_total"`
	Freight  decimal.Decimal         `json:"freight"`
	Lines    []FreightAllocationLine `json:"lines"`
}

// ReceiveOrderResponse reports the outcome of the receipt transition.
// Applied is false when the order was already received (idempotent no-op)
// — stock is only ever incremented on the transition that applied.
type ReceiveOrderResponse struct {
	OrderID    string `json:"order_id"`
	Status     string `json:"status"`
	Applied    bool   `json:"applied"`
	ReceivedAt string `json:"received_at,omitempty"`
	LineCount  int    `json:"line_count"`
}
