package dto

import "github.com/shopspring/decimal"

// LowStockItem is one row of the low-stock report, most urgent first.
type LowStockItem struct {
	ProductID      string `json:"product_id"`
	SKU            string `json:"sku"`
	Name           string `json:"name"`
	StockQuantity  int    `json:"stock_quantity"`
	AlertThreshold int    `json:"alert_threshold"`
}

type LowStockResponse struct {
	Items []LowStockItem `json:"items"`
	Total int            `json:"total"`
}

// SupplierCandidate is a supplier proposed for a reorder, either from recent
// purchase history or from the active-supplier fallback.
type SupplierCandidate struct {
	SupplierID string `json:"supplier_id"`
	Name       string `json:"name"`
	Source     string `json:"source"` // "history" | "fallback"
}

// ReplenishmentItem pairs a low-stock product with its recommended reorder
// quantity. Items keep the low-stock report order (lowest stock first).
type ReplenishmentItem struct {
	ProductID       string `json:"product_id"`
	SKU             string `json:"sku"`
	Name            string `json:"name"`
	StockQuantity   int    `json:"stock_quantity"`
	AlertThreshold  int    `json:"alert_threshold"`
	ReorderQuantity int    `json:"reorder_quantity"`
}

type ReplenishmentResponse struct {
	Items []ReplenishmentItem `json:"items"`
	// Suppliers is deduplicated across the whole batch, not per product.
	Suppliers    []SupplierCandidate `json:"suppliers"`
	BufferFactor decimal.Decimal     `json:"buffer_factor"`
}

// ReplenishmentQuery carries the optional tuning knob for the planner.
type ReplenishmentQuery struct {
	BufferFactor float64 `form:"buffer_factor" validate:"omitempty,gt=0,lte=5"`
}

// MovementQuery is the validated query surface of the movement listing.
type MovementQuery struct {
	ProductID string `form:"product_id" validate:"omitempty,uuid"`
	Kind      string `form:"kind" validate:"omitempty,oneof=purchase_receipt manual_adjustment"`
	Page      int    `form:"page" validate:"omitempty,min=1"`
	Limit     int    `form:"limit" validate:"omitempty,min=1,max=200"`
}

// MovementFilter narrows the stock movement audit listing.
type MovementFilter struct {
	ProductID string
	Kind      string
	Page      int
	Limit     int
}

type MovementItem struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"product_id"`
	Product     string  `json:"product"`
	Kind        string  `json:"kind"`
	Quantity    int     `json:"quantity"`
	StockBefore int     `json:"stock_before"`
	StockAfter  int     `json:"stock_after"`
	Reason      string  `json:"reason"`
	ReferenceID *string `json:"reference_id,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

type MovementListResponse struct {
	Data  []MovementItem `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
