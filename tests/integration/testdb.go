// Package integration wires real repositories, services and the event bus
// against an in-memory SQLite database. Row-locking paths (FOR UPDATE) are
// covered by the sqlmock tests in the persistence package; SQLite does not
// support that clause.
package integration

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/orgms/backend/internal/domain/finance"
	"github.com/orgms/backend/internal/domain/inventory"
	"github.com/orgms/backend/internal/domain/ledger"
	"github.com/orgms/backend/internal/domain/sales"
)

// newTestDB opens a fresh in-memory database and migrates the full schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&sales.Sale{},
		&sales.SaleItem{},
		&sales.SalePayment{},
		&inventory.StockItem{},
		&inventory.StockHistory{},
		&finance.Expense{},
		&finance.Payment{},
		&ledger.Entry{},
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
