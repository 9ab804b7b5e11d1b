package inventory

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orgms/backend/internal/domain/inventory"
	"github.com/orgms/backend/internal/domain/shared"
	"github.com/orgms/backend/internal/domain/shared/valueobject"
)

// Service handles stock item registration, lookup and manual movements
type Service struct {
	scope     TransactionScope
	stock     inventory.StockItemRepository
	histories inventory.StockHistoryRepository
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewService creates a new inventory service
func NewService(
	scope TransactionScope,
	stockRepo inventory.StockItemRepository,
	historyRepo inventory.StockHistoryRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		scope:     scope,
		stock:     stockRepo,
		histories: historyRepo,
		logger:    logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.publisher = publisher
}

// Create registers a stock item. A non-zero initial quantity is booked
// as an "in" movement so the history starts complete.
func (s *Service) Create(ctx context.Context, req CreateStockItemRequest) (*StockItemResponse, error) {
	exists, err := s.stock.ExistsByPartCode(ctx, req.PartCode)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("DUPLICATE_PART_CODE", "A stock item with this part code already exists")
	}

	item, err := inventory.NewStockItem(req.PartName, req.PartCode, inventory.Unit(req.Unit), valueobject.NewMoneyBDT(req.UnitPrice))
	if err != nil {
		return nil, err
	}
	item.Location = req.Location
	item.Supplier = req.Supplier
	item.Notes = req.Notes
	if req.MinimumStock != nil {
		if err := item.SetMinimumStock(*req.MinimumStock); err != nil {
			return nil, err
		}
	}

	var history *inventory.StockHistory
	if req.InitialQuantity > 0 {
		history, err = item.Increment(req.InitialQuantity, "Initial stock", "")
		if err != nil {
			return nil, err
		}
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.StockItems().Save(ctx, item); err != nil {
			return err
		}
		if history != nil {
			return repos.StockHistories().Append(ctx, history)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, item)
	response := ToStockItemResponse(item)
	return &response, nil
}

// Get retrieves a stock item by ID
func (s *Service) Get(ctx context.Context, itemID uuid.UUID) (*StockItemResponse, error) {
	item, err := s.stock.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	response := ToStockItemResponse(item)
	return &response, nil
}

// GetByPartCode retrieves a stock item by its part code
func (s *Service) GetByPartCode(ctx context.Context, partCode string) (*StockItemResponse, error) {
	item, err := s.stock.FindByPartCode(ctx, partCode)
	if err != nil {
		return nil, err
	}
	response := ToStockItemResponse(item)
	return &response, nil
}

// List retrieves stock items with filtering and pagination
func (s *Service) List(ctx context.Context, filter StockListFilter) ([]StockItemResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Unit != nil {
		domainFilter.Filters["unit"] = *filter.Unit
	}
	if filter.Location != nil {
		domainFilter.Filters["location"] = *filter.Location
	}
	if filter.Supplier != nil {
		domainFilter.Filters["supplier"] = *filter.Supplier
	}
	if filter.LowStock {
		domainFilter.Filters["low_stock"] = true
	}

	page, err := s.stock.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToStockItemResponses(page.Items), page.Total, nil
}

// LowStock returns every item at or below its minimum threshold
func (s *Service) LowStock(ctx context.Context) ([]StockItemResponse, error) {
	items, err := s.stock.FindLowStock(ctx)
	if err != nil {
		return nil, err
	}
	return ToStockItemResponses(items), nil
}

// Update changes the descriptive fields, price and threshold of an item
func (s *Service) Update(ctx context.Context, itemID uuid.UUID, req UpdateStockItemRequest) (*StockItemResponse, error) {
	item, err := s.stock.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	version := item.Version

	if err := item.UpdateDetails(req.PartName, req.Location, req.Supplier, req.Notes); err != nil {
		return nil, err
	}
	if req.UnitPrice != nil {
		if err := item.SetUnitPrice(valueobject.NewMoneyBDT(*req.UnitPrice)); err != nil {
			return nil, err
		}
	}
	if req.MinimumStock != nil {
		if err := item.SetMinimumStock(*req.MinimumStock); err != nil {
			return nil, err
		}
	}

	if err := s.stock.SaveWithLock(ctx, item, version); err != nil {
		return nil, err
	}

	response := ToStockItemResponse(item)
	return &response, nil
}

// Adjust applies a manual stock movement and records its history in the
// same transaction
func (s *Service) Adjust(ctx context.Context, itemID uuid.UUID, req AdjustStockRequest) (*StockItemResponse, error) {
	var adjusted *inventory.StockItem

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		item, err := repos.StockItems().FindByIDForUpdate(ctx, itemID)
		if err != nil {
			return err
		}

		var history *inventory.StockHistory
		switch inventory.MovementType(req.MovementType) {
		case inventory.MovementIn:
			history, err = item.Increment(req.Quantity, req.Reason, req.Actor)
		case inventory.MovementOut:
			history, err = item.Decrement(req.Quantity, req.Reason, req.Actor)
		case inventory.MovementAdjustment:
			history, err = item.Adjust(req.Quantity, req.Reason, req.Actor)
		default:
			return shared.NewDomainError("INVALID_MOVEMENT", "Movement type must be in, out or adjustment")
		}
		if err != nil {
			return err
		}

		if err := repos.StockItems().Save(ctx, item); err != nil {
			return err
		}
		if err := repos.StockHistories().Append(ctx, history); err != nil {
			return err
		}
		adjusted = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, adjusted)
	response := ToStockItemResponse(adjusted)
	return &response, nil
}

// History lists the movement records of one stock item
func (s *Service) History(ctx context.Context, itemID uuid.UUID, filter HistoryListFilter) ([]StockHistoryResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Filters:  make(map[string]interface{}),
	}
	if filter.MovementType != nil {
		domainFilter.Filters["movement_type"] = *filter.MovementType
	}

	page, err := s.histories.FindByStockItem(ctx, itemID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToStockHistoryResponses(page.Items), page.Total, nil
}

// Delete removes a stock item. Movement history is kept for audit.
func (s *Service) Delete(ctx context.Context, itemID uuid.UUID) error {
	item, err := s.stock.FindByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item.Quantity > 0 {
		return shared.NewDomainError("STOCK_NOT_EMPTY", "Cannot delete a stock item with remaining quantity")
	}
	return s.stock.Delete(ctx, itemID)
}

func (s *Service) publishEvents(ctx context.Context, item *inventory.StockItem) {
	if s.publisher == nil || item == nil {
		return
	}
	events := item.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish stock events",
			zap.String("part_code", item.PartCode),
			zap.Error(err),
		)
	}
	item.ClearDomainEvents()
}
