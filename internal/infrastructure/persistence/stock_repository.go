package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/orgms/backend/internal/domain/inventory"
	"github.com/orgms/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockItemRepository implements StockItemRepository using GORM
type GormStockItemRepository struct {
	db *gorm.DB
}

// NewGormStockItemRepository creates a new GormStockItemRepository
func NewGormStockItemRepository(db *gorm.DB) *GormStockItemRepository {
	return &GormStockItemRepository{db: db}
}

// FindByID finds a stock item by its ID
func (r *GormStockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockItem, error) {
	var item inventory.StockItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByIDForUpdate loads a stock item with a FOR UPDATE row lock. Callers
// must run this inside a transaction for the lock to hold.
func (r *GormStockItemRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*inventory.StockItem, error) {
	var item inventory.StockItem
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByPartCode finds a stock item by its part code
func (r *GormStockItemRepository) FindByPartCode(ctx context.Context, partCode string) (*inventory.StockItem, error) {
	var item inventory.StockItem
	if err := r.db.WithContext(ctx).
		Where("part_code = ?", partCode).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindAll finds stock items with filtering and pagination
func (r *GormStockItemRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*inventory.StockItem], error) {
	var total int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.StockItem{}), filter).
		Count(&total).Error; err != nil {
		return nil, err
	}

	var items []*inventory.StockItem
	query := applyPagination(
		r.applyFilter(r.db.WithContext(ctx).Model(&inventory.StockItem{}), filter),
		filter, "part_name ASC",
	)
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}

	page, pageSize := pageOf(filter)
	result := shared.NewPaginated(items, total, page, pageSize)
	return &result, nil
}

// FindLowStock returns every item at or below its minimum stock level
func (r *GormStockItemRepository) FindLowStock(ctx context.Context) ([]*inventory.StockItem, error) {
	var items []*inventory.StockItem
	if err := r.db.WithContext(ctx).
		Where("quantity <= minimum_stock").
		Order("part_name ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Save creates or updates a stock item
func (r *GormStockItemRepository) Save(ctx context.Context, item *inventory.StockItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// SaveWithLock updates a stock item with an optimistic version check
func (r *GormStockItemRepository) SaveWithLock(ctx context.Context, item *inventory.StockItem, expectedVersion int) error {
	item.Version = expectedVersion + 1
	item.UpdatedAt = time.Now()

	result := r.db.WithContext(ctx).
		Model(&inventory.StockItem{}).
		Where("id = ? AND version = ?", item.ID, expectedVersion).
		Updates(map[string]interface{}{
			"part_name":     item.PartName,
			"part_code":     item.PartCode,
			"quantity":      item.Quantity,
			"unit":          item.Unit,
			"unit_price":    item.UnitPrice,
			"location":      item.Location,
			"minimum_stock": item.MinimumStock,
			"supplier":      item.Supplier,
			"notes":         item.Notes,
			"version":       item.Version,
			"updated_at":    item.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete hard-deletes a stock item
func (r *GormStockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.StockItem{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsByPartCode checks whether a part code is already registered
func (r *GormStockItemRepository) ExistsByPartCode(ctx context.Context, partCode string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.StockItem{}).
		Where("part_code = ?", partCode).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies search and field filters to the query
func (r *GormStockItemRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("part_name ILIKE ? OR part_code ILIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "unit":
			query = query.Where("unit = ?", value)
		case "location":
			query = query.Where("location = ?", value)
		case "supplier":
			query = query.Where("supplier = ?", value)
		case "low_stock":
			if value == true {
				query = query.Where("quantity <= minimum_stock")
			}
		}
	}

	return query
}

// GormStockHistoryRepository implements StockHistoryRepository using GORM
type GormStockHistoryRepository struct {
	db *gorm.DB
}

// NewGormStockHistoryRepository creates a new GormStockHistoryRepository
func NewGormStockHistoryRepository(db *gorm.DB) *GormStockHistoryRepository {
	return &GormStockHistoryRepository{db: db}
}

// Append inserts a stock movement record
func (r *GormStockHistoryRepository) Append(ctx context.Context, history *inventory.StockHistory) error {
	return r.db.WithContext(ctx).Create(history).Error
}

// FindByStockItem returns movement records for one stock item, newest first
func (r *GormStockHistoryRepository) FindByStockItem(ctx context.Context, stockItemID uuid.UUID, filter shared.Filter) (*shared.Paginated[*inventory.StockHistory], error) {
	conditions := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Model(&inventory.StockHistory{}).
			Where("stock_item_id = ?", stockItemID)
	}
	return r.paginate(conditions, filter)
}

// FindAll returns movement records across all items, newest first
func (r *GormStockHistoryRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*inventory.StockHistory], error) {
	conditions := func() *gorm.DB {
		query := r.db.WithContext(ctx).Model(&inventory.StockHistory{})
		if movement, ok := filter.Filters["movement_type"]; ok {
			query = query.Where("movement_type = ?", movement)
		}
		return query
	}
	return r.paginate(conditions, filter)
}

func (r *GormStockHistoryRepository) paginate(conditions func() *gorm.DB, filter shared.Filter) (*shared.Paginated[*inventory.StockHistory], error) {
	var total int64
	if err := conditions().Count(&total).Error; err != nil {
		return nil, err
	}

	var histories []*inventory.StockHistory
	if err := applyPagination(conditions(), filter, "created_at DESC").Find(&histories).Error; err != nil {
		return nil, err
	}

	page, pageSize := pageOf(filter)
	result := shared.NewPaginated(histories, total, page, pageSize)
	return &result, nil
}

// Ensure implementations satisfy the repository interfaces
var (
	_ inventory.StockItemRepository    = (*GormStockItemRepository)(nil)
	_ inventory.StockHistoryRepository = (*GormStockHistoryRepository)(nil)
)
