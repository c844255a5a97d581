package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Domain error taxonomy. Handlers map these onto HTTP statuses; a caller can
// always distinguish "legitimately empty" from "computation failed".
var (
	// ErrNotFound — the referenced product, order or supplier does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAggregationFailed — the store was unreachable or a read failed while
	// aggregating. The engine does not retry internally; callers apply their
	// own retry/backoff policy.
	ErrAggregationFailed = errors.New("aggregation failed")

	// ErrAllocationDrift — the per-line freight allocations drift from the
	// order's freight total beyond the rounding epsilon. Usually means the
	// order's sub_total no longer matches the sum of its line amounts.
	ErrAllocationDrift = errors.New("freight allocation drift")

	// ErrOrderCancelled — receiving a cancelled order is rejected.
	ErrOrderCancelled = errors.New("order is cancelled")
)

// notFound converts GORM's record-not-found into the domain sentinel and
// flags everything else as a store failure.
func notFound(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return aggregationFailed(op, err)
}

func aggregationFailed(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrAggregationFailed, err)
}
