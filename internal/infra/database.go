package infra

import (
	"fmt"

	"stockpilot/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate
// for the engine's tables and applies the idempotent patches AutoMigrate
// cannot express.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations is shared with the integration test harness so test
// containers get the same schema as production.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Supplier{},
		&model.Product{},
		&model.PurchaseOrder{},
		&model.PurchaseItem{},
		&model.StockMovement{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
// The partial index keeps the low-stock scan cheap on large catalogs.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		`CREATE INDEX IF NOT EXISTS idx_products_low_stock
		     ON products (stock_quantity)
		     WHERE active = true AND stock_quantity <= alert_threshold`,
		`CREATE INDEX IF NOT EXISTS idx_purchase_items_product_created
		     ON purchase_items (product_id, created_at DESC)`,
	}
	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("schema patch: %w", err)
		}
	}
	return nil
}
