package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stockpilot/internal/cache"
	"stockpilot/internal/dto"
	"stockpilot/internal/model"
	"stockpilot/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ReceiptService owns the pending → received transition of a purchase order.
type ReceiptService interface {
	Receive(ctx context.Context, orderID uuid.UUID) (*dto.ReceiveOrderResponse, error)
}

type receiptService struct {
	purchases repository.PurchaseRepository
	products  repository.ProductRepository
	movements repository.StockMovementRepository
	rdb       *redis.Client // nil in unit tests — invalidation becomes a no-op
}

func NewReceiptService(
	purchases repository.PurchaseRepository,
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
	rdb *redis.Client,
) ReceiptService {
	return &receiptService{purchases: purchases, products: products, movements: movements, rdb: rdb}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// errTransitionLost aborts the transaction when the status guard does not
// hold — a concurrent Receive won the compare-and-swap.
var errTransitionLost = errors.New("receipt transition lost")

// Receive marks the order received and commits its stock increments as one
// serializable unit: the conditional status update (guarded on "pending")
// and every stock increment run in a single transaction, so two concurrent
// calls can never both apply. The losing call — like any call on an
// already-received order — is a no-op that leaves stock untouched.
func (s *receiptService) Receive(ctx context.Context, orderID uuid.UUID) (*dto.ReceiveOrderResponse, error) {
	order, err := s.purchases.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, notFound("receive: order", err)
	}

	switch order.Status {
	case model.OrderReceived:
		return noopResponse(order), nil
	case model.OrderCancelled:
		return nil, fmt.Errorf("receive %s: %w", orderID, ErrOrderCancelled)
	}

	now := time.Now().UTC()
	txErr := runTx(ctx, s.purchases.DB(), func(tx *gorm.DB) error {
		rows, err := s.purchases.SetOrderStatusTx(tx, orderID, model.OrderReceived, model.OrderPending, &now)
		if err != nil {
			return err
		}
		if rows == 0 {
			return errTransitionLost
		}

		for _, line := range order.Items {
			before, err := s.products.FindByIDTx(tx, line.ProductID)
			if err != nil {
				return fmt.Errorf("receive: product %s: %w", line.ProductID, err)
			}
			if err := s.products.IncrementStockTx(tx, line.ProductID, line.Quantity); err != nil {
				return fmt.Errorf("receive: increment stock %s: %w", line.ProductID, err)
			}

			ref := order.ID
			mov := &model.StockMovement{
				ProductID:   line.ProductID,
				Kind:        "purchase_receipt",
				Quantity:    line.Quantity,
				StockBefore: before.StockQuantity,
				StockAfter:  before.StockQuantity + line.Quantity,
				Reason:      fmt.Sprintf("Receipt of purchase order %s", order.ID),
				ReferenceID: &ref,
			}
			if err := s.movements.CreateTx(tx, mov); err != nil {
				return err
			}
		}
		return nil
	})

	if errors.Is(txErr, errTransitionLost) {
		// A concurrent call already received the order; this one is a no-op.
		order.Status = model.OrderReceived
		return noopResponse(order), nil
	}
	if txErr != nil {
		return nil, txErr
	}

	productIDs := make([]uuid.UUID, 0, len(order.Items))
	for _, line := range order.Items {
		productIDs = append(productIDs, line.ProductID)
	}
	cache.InvalidateAfterReceipt(ctx, s.rdb, productIDs)

	return &dto.ReceiveOrderResponse{
		OrderID:    order.ID.String(),
		Status:     model.OrderReceived,
		Applied:    true,
		ReceivedAt: now.Format(time.RFC3339),
		LineCount:  len(order.Items),
	}, nil
}

func noopResponse(order *model.PurchaseOrder) *dto.ReceiveOrderResponse {
	resp := &dto.ReceiveOrderResponse{
		OrderID:   order.ID.String(),
		Status:    order.Status,
		Applied:   false,
		LineCount: len(order.Items),
	}
	if order.ReceivedAt != nil {
		resp.ReceivedAt = order.ReceivedAt.UTC().Format(time.RFC3339)
	}
	return resp
}
