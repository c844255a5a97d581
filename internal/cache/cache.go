// Package cache centralizes the Redis key scheme so read-through caching in
// the handlers and invalidation in the receipt path cannot drift apart.
package cache

import (
	"context"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	LowStockKey    = "report:low-stock"
	trueCostPrefix = "cost:true:"
)

func TrueCostKey(productID uuid.UUID) string {
	return trueCostPrefix + productID.String()
}

// InvalidateAfterReceipt drops every cached read a receipt commit makes
// stale: the per-product true-cost entries and the low-stock report.
// Best effort — a failed invalidation only extends staleness by at most the
// cache TTL, it never fails the receipt.
func InvalidateAfterReceipt(ctx context.Context, rdb *redis.Client, productIDs []uuid.UUID) {
	if rdb == nil {
		return
	}
	keys := make([]string, 0, len(productIDs)+2)
	for _, id := range productIDs {
		keys = append(keys, TrueCostKey(id))
	}
	keys = append(keys, LowStockKey)

	if err := rdb.Del(ctx, keys...).Err(); err != nil {
		log.Warn().Err(err).Int("keys", len(keys)).Msg("cache invalidation failed")
	}
}
