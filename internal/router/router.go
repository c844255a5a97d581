package router

import (
	"time"

	"stockpilot/internal/config"
	"stockpilot/internal/handler"
	"stockpilot/internal/middleware"
	"stockpilot/internal/repository"
	"stockpilot/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(cfg.RateLimitPerMinute, time.Minute))

	// ── Repositories ─────────────────────────────────────────────────────────
	productRepo := repository.NewProductRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	monitor := service.NewStockMonitor(productRepo)
	ranker := service.NewSupplierRanker(purchaseRepo, supplierRepo)
	planner := service.NewReplenishmentPlanner(monitor, ranker, cfg.SupplierLimit)
	resolver := service.NewCostResolver(productRepo, purchaseRepo)
	receipts := service.NewReceiptService(purchaseRepo, productRepo, movementRepo, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	lowStockTTL := time.Duration(cfg.LowStockCacheTTL) * time.Second
	trueCostTTL := time.Duration(cfg.TrueCostCacheTTL) * time.Second

	inventoryH := handler.NewInventoryHandler(
		monitor, planner, movementRepo, rdb, lowStockTTL,
		decimal.NewFromFloat(cfg.BufferFactor),
	)
	costH := handler.NewCostHandler(resolver, rdb, trueCostTTL)
	ordersH := handler.NewOrdersHandler(receipts, purchaseRepo)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(db, rdb))

	v1 := r.Group("/v1")
	{
		inv := v1.Group("/inventory")
		{
			inv.GET("/low-stock", inventoryH.LowStock)
			inv.GET("/replenishment", inventoryH.Replenishment)
			inv.GET("/movements", inventoryH.Movements)
		}

		v1.GET("/products/:id/true-cost", costH.TrueCost)

		orders := v1.Group("/orders")
		{
			orders.GET("/:id/freight-allocation", ordersH.FreightAllocation)
			orders.POST("/:id/receive", ordersH.Receive)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
