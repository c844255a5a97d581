package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"stockpilot/internal/dto"
	"stockpilot/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── In-memory repository stubs ───────────────────────────────────────────────
// The stubs implement the repository interfaces over plain maps so services
// run without a database. Tx methods ignore the nil tx handed to them by
// runTx's unit-test mode.

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
	failWith error
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) add(p *model.Product) *model.Product {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return p
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) FindBelowThreshold(_ context.Context) ([]model.Product, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	var result []model.Product
	for _, p := range r.products {
		if p.Active && p.StockQuantity <= p.AlertThreshold {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].StockQuantity != result[j].StockQuantity {
			return result[i].StockQuantity < result[j].StockQuantity
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func (r *stubProductRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Product, error) {
	// Like the real repository, return a snapshot rather than the stored
	// pointer so later increments don't mutate it.
	p, err := r.FindByID(context.Background(), id)
	if err != nil {
		return nil, err
	}
	snapshot := *p
	return &snapshot, nil
}

func (r *stubProductRepo) IncrementStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.StockQuantity += delta
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

type stubSupplierRepo struct {
	suppliers []model.Supplier
	failWith  error
}

func (r *stubSupplierRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Supplier, error) {
	for i := range r.suppliers {
		if r.suppliers[i].ID == id {
			return &r.suppliers[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSupplierRepo) FindActive(_ context.Context, limit int) ([]model.Supplier, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	var result []model.Supplier
	for _, s := range r.suppliers {
		if s.Status == model.SupplierActive {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

type stubPurchaseRepo struct {
	orders        map[uuid.UUID]*model.PurchaseOrder
	failWith      error
	linesFailWith map[uuid.UUID]error // per product
	// staleStatus, when set, is the status FindOrderByID reports regardless
	// of the stored row. Lets tests race the read against the CAS.
	staleStatus string
}

func newStubPurchaseRepo() *stubPurchaseRepo {
	return &stubPurchaseRepo{
		orders:        make(map[uuid.UUID]*model.PurchaseOrder),
		linesFailWith: make(map[uuid.UUID]error),
	}
}

func (r *stubPurchaseRepo) add(o *model.PurchaseOrder) *model.PurchaseOrder {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	for i := range o.Items {
		if o.Items[i].ID == uuid.Nil {
			o.Items[i].ID = uuid.New()
		}
		o.Items[i].OrderID = o.ID
	}
	r.orders[o.ID] = o
	return o
}

func (r *stubPurchaseRepo) FindOrderByID(_ context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	o, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if r.staleStatus != "" {
		stale := *o
		stale.Status = r.staleStatus
		return &stale, nil
	}
	return o, nil
}

// productLines returns every line for a product, newest first, with the
// owning order (and its supplier) attached the way Preload would.
func (r *stubPurchaseRepo) productLines(productID uuid.UUID) []model.PurchaseItem {
	var lines []model.PurchaseItem
	for _, o := range r.orders {
		for i := range o.Items {
			if o.Items[i].ProductID != productID {
				continue
			}
			line := o.Items[i]
			line.Order = o
			lines = append(lines, line)
		}
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].CreatedAt.After(lines[j].CreatedAt) })
	return lines
}

func (r *stubPurchaseRepo) FindRecentLinesByProduct(_ context.Context, productID uuid.UUID, limit int) ([]model.PurchaseItem, error) {
	if err, ok := r.linesFailWith[productID]; ok {
		return nil, err
	}
	if r.failWith != nil {
		return nil, r.failWith
	}
	lines := r.productLines(productID)
	if len(lines) > limit {
		lines = lines[:limit]
	}
	return lines, nil
}

func (r *stubPurchaseRepo) FindLinesByProduct(_ context.Context, productID uuid.UUID) ([]model.PurchaseItem, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	lines := r.productLines(productID)
	// oldest first on this path
	sort.Slice(lines, func(i, j int) bool { return lines[i].CreatedAt.Before(lines[j].CreatedAt) })
	return lines, nil
}

func (r *stubPurchaseRepo) SetOrderStatusTx(_ *gorm.DB, id uuid.UUID, status, guardStatus string, receivedAt *time.Time) (int64, error) {
	o, ok := r.orders[id]
	if !ok || o.Status != guardStatus {
		return 0, nil
	}
	o.Status = status
	o.ReceivedAt = receivedAt
	return 1, nil
}

func (r *stubPurchaseRepo) DB() *gorm.DB { return nil }

type stubMovementRepo struct {
	movements []*model.StockMovement
	failWith  error
}

func (r *stubMovementRepo) CreateTx(_ *gorm.DB, m *model.StockMovement) error {
	if r.failWith != nil {
		return r.failWith
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movements = append(r.movements, m)
	return nil
}

func (r *stubMovementRepo) List(_ context.Context, filter dto.MovementFilter) ([]model.StockMovement, int64, error) {
	var result []model.StockMovement
	for _, m := range r.movements {
		if filter.ProductID != "" && m.ProductID.String() != filter.ProductID {
			continue
		}
		result = append(result, *m)
	}
	return result, int64(len(result)), nil
}

var errStoreDown = errors.New("connection refused")
