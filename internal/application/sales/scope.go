package sales

import (
	"context"

	"github.com/orgms/backend/internal/domain/inventory"
	"github.com/orgms/backend/internal/domain/sales"
)

// TransactionalRepositories provides repositories bound to one database
// transaction, so sale and stock mutations commit or roll back together.
type TransactionalRepositories interface {
	Sales() sales.SaleRepository
	StockItems() inventory.StockItemRepository
	StockHistories() inventory.StockHistoryRepository
}

// TransactionScope executes a function atomically across the sales and
// inventory repositories. Implemented by the persistence layer.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}
