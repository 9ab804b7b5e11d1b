package persistence

import (
	"context"

	appinventory "github.com/orgms/backend/internal/application/inventory"
	"github.com/orgms/backend/internal/domain/inventory"
	"gorm.io/gorm"
)

// GormStockTransactionScope implements the inventory TransactionScope
// using GORM transactions, so a stock movement and its history record
// commit together.
type GormStockTransactionScope struct {
	db *gorm.DB
}

// NewGormStockTransactionScope creates a new GormStockTransactionScope
func NewGormStockTransactionScope(db *gorm.DB) *GormStockTransactionScope {
	return &GormStockTransactionScope{db: db}
}

// Execute runs fn within a database transaction. An error from fn rolls
// everything back.
func (s *GormStockTransactionScope) Execute(ctx context.Context, fn func(repos appinventory.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStockTransactionalRepositories{tx: tx})
	})
}

// gormStockTransactionalRepositories provides repositories scoped to one transaction
type gormStockTransactionalRepositories struct {
	tx *gorm.DB
}

// StockItems returns the stock item repository scoped to the current transaction
func (r *gormStockTransactionalRepositories) StockItems() inventory.StockItemRepository {
	return NewGormStockItemRepository(r.tx)
}

// StockHistories returns the stock history repository scoped to the current transaction
func (r *gormStockTransactionalRepositories) StockHistories() inventory.StockHistoryRepository {
	return NewGormStockHistoryRepository(r.tx)
}

var (
	_ appinventory.TransactionScope          = (*GormStockTransactionScope)(nil)
	_ appinventory.TransactionalRepositories = (*gormStockTransactionalRepositories)(nil)
)
