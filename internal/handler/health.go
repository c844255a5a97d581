package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const healthCheckTimeout = 3 * time.Second

// Health reports DB and Redis connectivity. Degraded dependencies flip the
// status to 503 so the orchestrator can rotate the instance out.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		checks := gin.H{
			"postgres": pingPostgres(ctx, db),
			"redis":    rdb.Ping(ctx).Err() == nil,
		}

		status := http.StatusOK
		for _, ok := range checks {
			if ok != true {
				status = http.StatusServiceUnavailable
			}
		}

		c.JSON(status, gin.H{
			"ok":     status == http.StatusOK,
			"checks": checks,
		})
	}
}

func pingPostgres(ctx context.Context, db *gorm.DB) bool {
	sqlDB, err := db.DB()
	if err != nil {
		return false
	}
	return sqlDB.PingContext(ctx) == nil
}
