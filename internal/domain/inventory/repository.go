package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/orgms/backend/internal/domain/shared"
)

// StockItemRepository defines persistence operations for stock items
type StockItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*StockItem, error)
	// FindByIDForUpdate loads the item with a row lock inside the current transaction
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*StockItem, error)
	FindByPartCode(ctx context.Context, partCode string) (*StockItem, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*StockItem], error)
	FindLowStock(ctx context.Context) ([]*StockItem, error)
	Save(ctx context.Context, item *StockItem) error
	SaveWithLock(ctx context.Context, item *StockItem, expectedVersion int) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByPartCode(ctx context.Context, partCode string) (bool, error)
}

// StockHistoryRepository defines persistence operations for stock movement records.
// Histories are append-only; there is no update or delete.
type StockHistoryRepository interface {
	Append(ctx context.Context, history *StockHistory) error
	FindByStockItem(ctx context.Context, stockItemID uuid.UUID, filter shared.Filter) (*shared.Paginated[*StockHistory], error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*StockHistory], error)
}
