package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"stockpilot/internal/apierror"
	"stockpilot/internal/cache"
	"stockpilot/internal/dto"
	"stockpilot/internal/repository"
	"stockpilot/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// InventoryHandler serves the low-stock report, the replenishment
// recommendations and the stock movement audit listing.
type InventoryHandler struct {
	monitor       service.StockMonitor
	planner       service.ReplenishmentPlanner
	movements     repository.StockMovementRepository
	rdb           *redis.Client
	lowStockTTL   time.Duration
	defaultBuffer decimal.Decimal
}

func NewInventoryHandler(
	monitor service.StockMonitor,
	planner service.ReplenishmentPlanner,
	movements repository.StockMovementRepository,
	rdb *redis.Client,
	lowStockTTL time.Duration,
	defaultBuffer decimal.Decimal,
) *InventoryHandler {
	if defaultBuffer.LessThanOrEqual(decimal.Zero) {
		defaultBuffer = service.DefaultBufferFactor
	}
	return &InventoryHandler{
		monitor:       monitor,
		planner:       planner,
		movements:     movements,
		rdb:           rdb,
		lowStockTTL:   lowStockTTL,
		defaultBuffer: defaultBuffer,
	}
}

// LowStock godoc
// @Summary Products at or below their alert threshold, most urgent first
// @Tags inventory
// @Produce json
// @Success 200 {object} dto.LowStockResponse
// @Router /v1/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *gin.Context) {
	ctx := c.Request.Context()

	// Read-through cache: the report is recomputed at most once per TTL and
	// dropped eagerly whenever a receipt commits stock.
	if h.rdb != nil {
		if cached, err := h.rdb.Get(ctx, cache.LowStockKey).Bytes(); err == nil {
			var resp dto.LowStockResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				c.JSON(http.StatusOK, resp)
				return
			}
		}
	}

	products, err := h.monitor.ScanLowStock(ctx)
	if err != nil {
		// Degrade to an empty report; the failure stays observable in logs.
		log.Error().Err(err).Msg("low stock scan failed")
		c.JSON(http.StatusOK, dto.LowStockResponse{Items: []dto.LowStockItem{}})
		return
	}

	resp := dto.LowStockResponse{Items: make([]dto.LowStockItem, 0, len(products)), Total: len(products)}
	for _, p := range products {
		resp.Items = append(resp.Items, dto.LowStockItem{
			ProductID:      p.ID.String(),
			SKU:            p.SKU,
			Name:           p.Name,
			StockQuantity:  p.StockQuantity,
			AlertThreshold: p.AlertThreshold,
		})
	}

	if h.rdb != nil {
		if b, jsonErr := json.Marshal(resp); jsonErr == nil {
			_ = h.rdb.Set(context.Background(), cache.LowStockKey, b, h.lowStockTTL).Err()
		}
	}

	c.JSON(http.StatusOK, resp)
}

// Replenishment godoc
// @Summary Reorder recommendations for every low-stock product
// @Tags inventory
// @Produce json
// @Param buffer_factor query number false "Threshold padding factor (default 1.2)"
// @Success 200 {object} dto.ReplenishmentResponse
// @Router /v1/inventory/replenishment [get]
func (h *InventoryHandler) Replenishment(c *gin.Context) {
	var q dto.ReplenishmentQuery
	if !bindQueryAndValidate(c, &q) {
		return
	}

	buffer := h.defaultBuffer
	if q.BufferFactor > 0 {
		buffer = decimal.NewFromFloat(q.BufferFactor)
	}

	resp, err := h.planner.Plan(c.Request.Context(), buffer)
	if err != nil {
		log.Error().Err(err).Msg("replenishment planning failed")
		c.JSON(http.StatusOK, dto.ReplenishmentResponse{
			Items:        []dto.ReplenishmentItem{},
			Suppliers:    []dto.SupplierCandidate{},
			BufferFactor: buffer,
		})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Movements godoc
// @Summary Paginated stock movement audit trail
// @Tags inventory
// @Produce json
// @Success 200 {object} dto.MovementListResponse
// @Router /v1/inventory/movements [get]
func (h *InventoryHandler) Movements(c *gin.Context) {
	var q dto.MovementQuery
	if !bindQueryAndValidate(c, &q) {
		return
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 50
	}

	filter := dto.MovementFilter{ProductID: q.ProductID, Kind: q.Kind, Page: q.Page, Limit: q.Limit}
	movements, total, err := h.movements.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list stock movements"))
		return
	}

	items := make([]dto.MovementItem, 0, len(movements))
	for _, m := range movements {
		item := dto.MovementItem{
			ID:          m.ID.String(),
			ProductID:   m.ProductID.String(),
			Kind:        m.Kind,
			Quantity:    m.Quantity,
			StockBefore: m.StockBefore,
			StockAfter:  m.StockAfter,
			Reason:      m.Reason,
			CreatedAt:   m.CreatedAt.UTC().Format(time.RFC3339),
		}
		if m.Product != nil {
			item.Product = m.Product.Name
		}
		if m.ReferenceID != nil {
			ref := m.ReferenceID.String()
			item.ReferenceID = &ref
		}
		items = append(items, item)
	}

	c.JSON(http.StatusOK, dto.MovementListResponse{Data: items, Total: total, Page: q.Page, Limit: q.Limit})
}
