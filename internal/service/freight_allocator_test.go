package service

import (
	"testing"

	"stockpilot/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func orderWithLines(subTotal, freight string, amounts ...string) *model.PurchaseOrder {
	o := &model.PurchaseOrder{
		ID:       uuid.New(),
		SubTotal: dec(subTotal),
		Freight:  dec(freight),
		Status:   model.OrderPending,
	}
	for _, a := range amounts {
		o.Items = append(o.Items, model.PurchaseItem{
			ID:      uuid.New(),
			OrderID: o.ID,
			Amount:  dec(a),
		})
	}
	return o
}

func TestAllocateFreightProportional(t *testing.T) {
	// 460.00 subtotal, 23.00 freight: 250 → 12.50, 75 → 3.75, 135 → 6.75
	order := orderWithLines("460.00", "23.00", "250.00", "75.00", "135.00")

	allocations, err := AllocateFreight(order)
	require.NoError(t, err)
	require.Len(t, allocations, 3)

	assert.True(t, dec("12.50").Equal(allocations[order.Items[0].ID]), "got %s", allocations[order.Items[0].ID])
	assert.True(t, dec("3.75").Equal(allocations[order.Items[1].ID]), "got %s", allocations[order.Items[1].ID])
	assert.True(t, dec("6.75").Equal(allocations[order.Items[2].ID]), "got %s", allocations[order.Items[2].ID])
}

func TestAllocateFreightEqualSplitOnZeroSubTotal(t *testing.T) {
	// All lines free samples: freight splits equally.
	order := orderWithLines("0", "10.00", "0", "0")

	allocations, err := AllocateFreight(order)
	require.NoError(t, err)
	for _, line := range order.Items {
		assert.True(t, dec("5.00").Equal(allocations[line.ID]), "got %s", allocations[line.ID])
	}
}

func TestAllocateFreightResidualLandsOnLastLine(t *testing.T) {
	// Three equal thirds of 10.00 round to 3.33 each; the missing cent
	// belongs to the last line.
	order := orderWithLines("300.00", "10.00", "100.00", "100.00", "100.00")

	allocations, err := AllocateFreight(order)
	require.NoError(t, err)

	assert.True(t, dec("3.33").Equal(allocations[order.Items[0].ID]))
	assert.True(t, dec("3.33").Equal(allocations[order.Items[1].ID]))
	assert.True(t, dec("3.34").Equal(allocations[order.Items[2].ID]))
}

func TestAllocateFreightSumMatchesFreightExactly(t *testing.T) {
	cases := []struct {
		name     string
		subTotal string
		freight  string
		amounts  []string
	}{
		{"proportional", "460.00", "23.00", []string{"250.00", "75.00", "135.00"}},
		{"residual correction", "300.00", "10.00", []string{"100.00", "100.00", "100.00"}},
		{"uneven amounts", "999.97", "17.43", []string{"0.01", "123.45", "876.51"}},
		{"single line", "50.00", "7.77", []string{"50.00"}},
		{"zero subtotal equal split", "0", "10.00", []string{"0", "0"}},
		{"zero subtotal odd split", "0", "10.00", []string{"0", "0", "0"}},
		{"zero freight", "120.00", "0", []string{"60.00", "60.00"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := orderWithLines(tc.subTotal, tc.freight, tc.amounts...)
			allocations, err := AllocateFreight(order)
			require.NoError(t, err)

			sum := decimal.Zero
			for _, a := range allocations {
				assert.True(t, a.GreaterThanOrEqual(decimal.Zero))
				sum = sum.Add(a)
			}
			assert.True(t, sum.Equal(order.Freight), "sum %s != freight %s", sum, order.Freight)
		})
	}
}

func TestAllocateFreightDriftDetected(t *testing.T) {
	// sub_total inconsistent with line amounts: shares sum to half the
	// freight, far beyond rounding noise.
	order := orderWithLines("200.00", "20.00", "50.00", "50.00")

	allocations, err := AllocateFreight(order)
	assert.ErrorIs(t, err, ErrAllocationDrift)
	// Best-effort allocations are still returned for degraded reads.
	assert.Len(t, allocations, 2)
}

func TestAllocateFreightNoLines(t *testing.T) {
	empty := &model.PurchaseOrder{ID: uuid.New(), SubTotal: decimal.Zero, Freight: decimal.Zero}
	allocations, err := AllocateFreight(empty)
	require.NoError(t, err)
	assert.Empty(t, allocations)

	orphanFreight := &model.PurchaseOrder{ID: uuid.New(), SubTotal: decimal.Zero, Freight: dec("5.00")}
	_, err = AllocateFreight(orphanFreight)
	assert.ErrorIs(t, err, ErrAllocationDrift)
}
