package handler

import (
	"errors"
	"net/http"

	"stockpilot/internal/apierror"
	"stockpilot/internal/dto"
	"stockpilot/internal/repository"
	"stockpilot/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// OrdersHandler exposes the receipt transition and the per-order freight
// allocation report shown on the purchase screen.
type OrdersHandler struct {
	receipts  service.ReceiptService
	purchases repository.PurchaseRepository
}

func NewOrdersHandler(receipts service.ReceiptService, purchases repository.PurchaseRepository) *OrdersHandler {
	return &OrdersHandler{receipts: receipts, purchases: purchases}
}

// Receive godoc
// @Summary Mark a purchase order received and commit its stock increments
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} dto.ReceiveOrderResponse
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/orders/{id}/receive [post]
func (h *OrdersHandler) Receive(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid order id"))
		return
	}

	resp, err := h.receipts.Receive(c.Request.Context(), orderID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, resp)
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, apierror.New("order not found"))
	case errors.Is(err, service.ErrOrderCancelled):
		c.JSON(http.StatusConflict, apierror.New("order is cancelled and cannot be received"))
	default:
		log.Error().Err(err).Str("order_id", orderID.String()).Msg("receipt transition failed")
		c.JSON(http.StatusInternalServerError, apierror.New("failed to receive order"))
	}
}

// FreightAllocation godoc
// @Summary Per-line freight allocation for a purchase order
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} dto.FreightAllocationResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/orders/{id}/freight-allocation [get]
func (h *OrdersHandler) FreightAllocation(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid order id"))
		return
	}

	order, err := h.purchases.FindOrderByID(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("order not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("failed to load order"))
		return
	}

	allocations, err := service.AllocateFreight(order)
	if err != nil {
		// Drift is served best-effort but must stay visible in the logs.
		log.Error().Err(err).Str("order_id", orderID.String()).Msg("freight allocation invariant violated")
	}

	resp := dto.FreightAllocationResponse{
		OrderID:  order.ID.String(),
		SubTotal: order.SubTotal,
		Freight:  order.Freight,
		Lines:    make([]dto.FreightAllocationLine, 0, len(order.Items)),
	}
	for _, line := range order.Items {
		resp.Lines = append(resp.Lines, dto.FreightAllocationLine{
			LineID:    line.ID.String(),
			ProductID: line.ProductID.String(),
			Quantity:  line.Quantity,
			Amount:    line.Amount,
			Allocated: allocations[line.ID],
		})
	}
	c.JSON(http.StatusOK, resp)
}
