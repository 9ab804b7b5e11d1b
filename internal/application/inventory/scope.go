package inventory

import (
	"context"

	"github.com/orgms/backend/internal/domain/inventory"
)

// TransactionalRepositories exposes the repositories bound to one
// database transaction
type TransactionalRepositories interface {
	StockItems() inventory.StockItemRepository
	StockHistories() inventory.StockHistoryRepository
}

// TransactionScope runs a function inside a database transaction so a
// stock movement and its history record commit or roll back together
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}
