package persistence

import (
	"context"

	appsales "github.com/orgms/backend/internal/application/sales"
	"github.com/orgms/backend/internal/domain/inventory"
	"github.com/orgms/backend/internal/domain/sales"
	"gorm.io/gorm"
)

// GormSaleTransactionScope implements TransactionScope using GORM
// transactions, so sale finalization can lock and decrement stock rows
// and flip the sale status atomically.
type GormSaleTransactionScope struct {
	db *gorm.DB
}

// NewGormSaleTransactionScope creates a new GormSaleTransactionScope
func NewGormSaleTransactionScope(db *gorm.DB) *GormSaleTransactionScope {
	return &GormSaleTransactionScope{db: db}
}

// Execute runs fn within a database transaction. An error from fn rolls
// everything back.
func (s *GormSaleTransactionScope) Execute(ctx context.Context, fn func(repos appsales.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormSaleTransactionalRepositories{tx: tx})
	})
}

// gormSaleTransactionalRepositories provides repositories scoped to one transaction
type gormSaleTransactionalRepositories struct {
	tx *gorm.DB
}

// Sales returns the sale repository scoped to the current transaction
func (r *gormSaleTransactionalRepositories) Sales() sales.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

// StockItems returns the stock item repository scoped to the current transaction
func (r *gormSaleTransactionalRepositories) StockItems() inventory.StockItemRepository {
	return NewGormStockItemRepository(r.tx)
}

// StockHistories returns the stock history repository scoped to the current transaction
func (r *gormSaleTransactionalRepositories) StockHistories() inventory.StockHistoryRepository {
	return NewGormStockHistoryRepository(r.tx)
}

var (
	_ appsales.TransactionScope          = (*GormSaleTransactionScope)(nil)
	_ appsales.TransactionalRepositories = (*gormSaleTransactionalRepositories)(nil)
)
