package store

import (
	"errors"
	"fmt"
	"os"
	"strings"

	migrate "github.com/golang-migrate/migrate/v4"
	// The following blank imports register the sqlite3 driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"smartbill/internal/models"
)

// Open connects to the local SQLite store at path and brings the schema up to
// date. With MIGRATIONS=1|true|yes the versioned SQL migrations in
// ./migrations run via golang-migrate; otherwise AutoMigrate keeps the schema
// current (additive only, existing rows are preserved either way).
func Open(path string) (*gorm.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("database path is empty, check DATABASE_PATH")
	}
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		// Deleting a client or product must not cascade or be restricted by
		// invoices referencing it, so the schema carries no FK constraints.
		DisableForeignKeyConstraintWhenMigrating: true,
	}
	db, err := gorm.Open(sqlite.Open(path), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	// Basic connectivity test
	if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}

	if v := strings.ToLower(os.Getenv("MIGRATIONS")); v == "1" || v == "true" || v == "yes" {
		if err := runSQLMigrations(path); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		modelsToMigrate := []interface{}{
			&models.Client{}, &models.Product{}, &models.Invoice{}, &models.InvoiceItem{}, &models.Setting{},
		}
		for _, m := range modelsToMigrate {
			if migErr := db.AutoMigrate(m); migErr != nil {
				return nil, fmt.Errorf("automigrate %T: %w", m, migErr)
			}
		}
	}

	// sanity check: ensure required core tables exist
	for _, table := range []string{"clients", "products", "invoices", "invoice_items", "settings"} {
		if !db.Migrator().HasTable(table) {
			return nil, errors.New("missing table after migration: " + table)
		}
	}
	// Seeding only when explicitly requested (e.g. development) via DB_SEED=1|true
	if v := strings.ToLower(os.Getenv("DB_SEED")); v == "1" || v == "true" || v == "yes" {
		seed(db)
	}
	return db, nil
}

// Close releases the underlying sql.DB connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func seed(db *gorm.DB) {
	baseClients := []models.Client{
		{Name: "Walk-in Customer", Contact: "counter"},
	}
	for _, c := range baseClients {
		var existing models.Client
		if err := db.Where("name = ?", c.Name).First(&existing).Error; err == gorm.ErrRecordNotFound {
			db.Create(&c)
		}
	}
	baseProducts := []models.Product{
		{Name: "Notebook A5", Price: decimal.NewFromInt(120), Stock: 50, GST: decimal.NewFromInt(12), Barcode: "8901234567890"},
		{Name: "Ball Pen", Price: decimal.NewFromInt(10), Stock: 200, GST: decimal.NewFromInt(18)},
	}
	for _, p := range baseProducts {
		var existing models.Product
		if err := db.Where("name = ?", p.Name).First(&existing).Error; err == gorm.ErrRecordNotFound {
			db.Create(&p)
		}
	}
}

// runSQLMigrations executes migrations in ./migrations using golang-migrate file source.
func runSQLMigrations(path string) error {
	m, err := migrate.New("file://migrations", "sqlite3://"+path)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = m.Close()
	}()
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
