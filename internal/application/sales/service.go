package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/orgms/backend/internal/domain/inventory"
	"github.com/orgms/backend/internal/domain/sales"
	"github.com/orgms/backend/internal/domain/shared"
	"github.com/orgms/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// Service handles the sale lifecycle: creation, item mutation, quote
// conversion, finalization against stock, payments and cancellation.
type Service struct {
	scope          TransactionScope
	sales          sales.SaleRepository
	stock          inventory.StockItemRepository
	publisher      shared.EventPublisher
	receiptRetries int
	logger         *zap.Logger
}

// NewService creates a new sale service. receiptRetries caps how often a
// colliding receipt number is regenerated before giving up.
func NewService(
	scope TransactionScope,
	saleRepo sales.SaleRepository,
	stockRepo inventory.StockItemRepository,
	receiptRetries int,
	logger *zap.Logger,
) *Service {
	if receiptRetries <= 0 {
		receiptRetries = 5
	}
	return &Service{
		scope:          scope,
		sales:          saleRepo,
		stock:          stockRepo,
		receiptRetries: receiptRetries,
		logger:         logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.publisher = publisher
}

// Create creates a sale or quote with its items and an optional initial
// payment, all in one transaction. Inventory line prices are read from
// the stock item, never from the request.
func (s *Service) Create(ctx context.Context, req CreateSaleRequest) (*SaleResponse, error) {
	var created *sales.Sale

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		saleNumber, err := repos.Sales().GenerateSaleNumber(ctx)
		if err != nil {
			return err
		}

		sale, err := sales.NewSale(saleNumber, req.CustomerID, req.CustomerName, sales.SaleStatus(req.Status))
		if err != nil {
			return err
		}
		if req.ExpectedInstallments > 0 {
			if err := sale.SetExpectedInstallments(req.ExpectedInstallments); err != nil {
				return err
			}
		}
		if req.Notes != "" {
			sale.SetNotes(req.Notes)
		}

		for _, input := range req.Items {
			if err := s.addItemFromInput(ctx, repos.StockItems(), sale, input); err != nil {
				return err
			}
		}

		if req.InitialPayment != nil {
			payment := AddPaymentRequest{
				Amount:      req.InitialPayment.Amount,
				PaymentDate: req.InitialPayment.PaymentDate,
				Method:      req.InitialPayment.Method,
				Notes:       req.InitialPayment.Notes,
			}
			if _, err := s.recordPayment(ctx, repos.Sales(), sale, payment); err != nil {
				return err
			}
		}

		if err := repos.Sales().Save(ctx, sale); err != nil {
			return err
		}
		created = sale
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, created)
	response := ToSaleResponse(created)
	return &response, nil
}

// Get retrieves a sale by ID with its items and payments
func (s *Service) Get(ctx context.Context, saleID uuid.UUID) (*SaleResponse, error) {
	sale, err := s.sales.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

// GetBySaleNumber retrieves a sale by its sale number
func (s *Service) GetBySaleNumber(ctx context.Context, saleNumber string) (*SaleResponse, error) {
	sale, err := s.sales.FindBySaleNumber(ctx, saleNumber)
	if err != nil {
		return nil, err
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

// List retrieves sales with filtering and pagination
func (s *Service) List(ctx context.Context, filter SaleListFilter) ([]SaleResponse, int64, error) {
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
	if filter.Status != nil {
		domainFilter.Filters["status"] = *filter.Status
	}
	if filter.CustomerID != nil {
		domainFilter.Filters["customer_id"] = *filter.CustomerID
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}

	page, err := s.sales.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToSaleResponses(page.Items), page.Total, nil
}

// AddItem adds a line item to a draft or quote sale
func (s *Service) AddItem(ctx context.Context, saleID uuid.UUID, req AddItemRequest) (*SaleResponse, error) {
	sale, err := s.sales.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	version := sale.Version

	if err := s.addItemFromInput(ctx, s.stock, sale, req); err != nil {
		return nil, err
	}
	if err := s.sales.SaveWithLock(ctx, sale, version); err != nil {
		return nil, err
	}

	response := ToSaleResponse(sale)
	return &response, nil
}

// RemoveItem removes a line item from a draft sale
func (s *Service) RemoveItem(ctx context.Context, saleID, itemID uuid.UUID) (*SaleResponse, error) {
	sale, err := s.sales.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	version := sale.Version

	if err := sale.RemoveItem(itemID); err != nil {
		return nil, err
	}
	if err := s.sales.SaveWithLock(ctx, sale, version); err != nil {
		return nil, err
	}

	response := ToSaleResponse(sale)
	return &response, nil
}

// ConvertToDraft turns a quote into a draft invoice
func (s *Service) ConvertToDraft(ctx context.Context, saleID uuid.UUID) (*SaleResponse, error) {
	sale, err := s.sales.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	version := sale.Version

	if err := sale.ConvertToDraft(); err != nil {
		return nil, err
	}
	if err := s.sales.SaveWithLock(ctx, sale, version); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, sale)
	response := ToSaleResponse(sale)
	return &response, nil
}

// Finalize flips a draft sale to finalized and decrements stock for its
// inventory lines in a single transaction. Stock rows are locked FOR
// UPDATE so concurrent finalizes serialize on them; any shortage rolls
// the whole transaction back. Items that dropped to or below their
// minimum are returned as warnings.
func (s *Service) Finalize(ctx context.Context, saleID uuid.UUID, req FinalizeSaleRequest) (*FinalizeSaleResponse, error) {
	var finalized *sales.Sale
	var lowStock []LowStockAlert

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		sale, err := repos.Sales().FindByID(ctx, saleID)
		if err != nil {
			return err
		}
		version := sale.Version

		if err := sale.Finalize(req.Actor); err != nil {
			return err
		}

		for _, item := range sale.InventoryItems() {
			stock, err := repos.StockItems().FindByIDForUpdate(ctx, *item.StockItemID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return shared.NewDomainError("STOCK_ITEM_NOT_FOUND",
						fmt.Sprintf("Stock item for %s no longer exists", item.DisplayName()))
				}
				return err
			}

			if !stock.CanFulfill(item.Quantity) {
				return shared.NewDomainError("INSUFFICIENT_STOCK",
					fmt.Sprintf("Insufficient stock for %s: available %d, requested %d",
						stock.PartName, stock.Quantity, item.Quantity))
			}

			history, err := stock.Decrement(item.Quantity, sale.SaleNumber, req.Actor)
			if err != nil {
				return err
			}
			if err := repos.StockItems().Save(ctx, stock); err != nil {
				return err
			}
			if err := repos.StockHistories().Append(ctx, history); err != nil {
				return err
			}

			if stock.IsLowStock() {
				lowStock = append(lowStock, LowStockAlert{
					StockItemID:  stock.ID,
					PartName:     stock.PartName,
					PartCode:     stock.PartCode,
					Quantity:     stock.Quantity,
					MinimumStock: stock.MinimumStock,
				})
			}
		}

		if err := repos.Sales().SaveWithLock(ctx, sale, version); err != nil {
			return err
		}
		finalized = sale
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, finalized)
	return &FinalizeSaleResponse{Sale: ToSaleResponse(finalized), LowStock: lowStock}, nil
}

// AddPayment records a payment against a sale under a freshly generated
// receipt number, retrying on receipt collisions. A collision that slips
// past the generator's pre-check and hits the unique index on save is
// retried with a fresh receipt number too, on a freshly loaded aggregate.
func (s *Service) AddPayment(ctx context.Context, saleID uuid.UUID, req AddPaymentRequest) (*SaleResponse, error) {
	var lastErr error
	for attempt := 0; attempt < s.receiptRetries; attempt++ {
		sale, err := s.sales.FindByID(ctx, saleID)
		if err != nil {
			return nil, err
		}
		version := sale.Version

		if _, err := s.recordPayment(ctx, s.sales, sale, req); err != nil {
			return nil, err
		}

		err = s.sales.SaveWithLock(ctx, sale, version)
		if err == nil {
			s.publishEvents(ctx, sale)
			response := ToSaleResponse(sale)
			return &response, nil
		}
		if !errors.Is(err, shared.ErrAlreadyExists) {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("could not record payment with a unique receipt number after %d attempts: %w", s.receiptRetries, lastErr)
}

// Cancel cancels a draft or quote sale
func (s *Service) Cancel(ctx context.Context, saleID uuid.UUID, req CancelSaleRequest) (*SaleResponse, error) {
	sale, err := s.sales.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	version := sale.Version

	if err := sale.Cancel(req.Actor, req.Reason); err != nil {
		return nil, err
	}
	if err := s.sales.SaveWithLock(ctx, sale, version); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, sale)
	response := ToSaleResponse(sale)
	return &response, nil
}

// Delete hard-deletes a draft sale together with its items and payments.
func (s *Service) Delete(ctx context.Context, saleID uuid.UUID) error {
	sale, err := s.sales.FindByID(ctx, saleID)
	if err != nil {
		return err
	}
	if !sale.CanDelete() {
		return shared.NewDomainError("INVALID_STATE", "Only draft sales can be deleted")
	}
	return s.sales.Delete(ctx, saleID)
}

// addItemFromInput resolves one request line into a domain item. Inventory
// lines are priced from the stock item.
func (s *Service) addItemFromInput(ctx context.Context, stockRepo inventory.StockItemRepository, sale *sales.Sale, input CreateSaleItemInput) error {
	switch sales.ItemType(input.ItemType) {
	case sales.ItemTypeInventory:
		if input.StockItemID == nil {
			return shared.NewDomainError("INVALID_ITEM", "Inventory items require a stock item reference")
		}
		stock, err := stockRepo.FindByID(ctx, *input.StockItemID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("STOCK_ITEM_NOT_FOUND", "Referenced stock item does not exist")
			}
			return err
		}
		_, err = sale.AddInventoryItem(stock.ID, stock.PartName, stock.PartCode, input.Quantity, stock.UnitPrice)
		return err

	case sales.ItemTypeNonInventory:
		if input.UnitPrice == nil {
			return shared.NewDomainError("INVALID_ITEM", "Non-inventory items require a unit price")
		}
		_, err := sale.AddNonInventoryItem(input.Description, input.Quantity, valueobject.NewMoneyBDT(*input.UnitPrice))
		return err

	default:
		return shared.NewDomainError("INVALID_ITEM", "Item type must be inventory or non_inventory")
	}
}

// recordPayment adds a payment under a fresh receipt number, retrying a
// bounded number of times when the generator reports a collision.
func (s *Service) recordPayment(ctx context.Context, saleRepo sales.SaleRepository, sale *sales.Sale, req AddPaymentRequest) (*sales.SalePayment, error) {
	paymentDate := time.Now()
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}

	var lastErr error
	for attempt := 0; attempt < s.receiptRetries; attempt++ {
		receiptNumber, err := saleRepo.GenerateReceiptNumber(ctx)
		if err != nil {
			if errors.Is(err, shared.ErrAlreadyExists) {
				lastErr = err
				continue
			}
			return nil, err
		}
		return sale.AddPayment(receiptNumber, valueobject.NewMoneyBDT(req.Amount), paymentDate, sales.PaymentMethod(req.Method), req.Notes)
	}

	return nil, fmt.Errorf("could not allocate a unique receipt number after %d attempts: %w", s.receiptRetries, lastErr)
}

// publishEvents publishes and clears the aggregate's pending events
func (s *Service) publishEvents(ctx context.Context, sale *sales.Sale) {
	if s.publisher == nil || sale == nil {
		return
	}
	events := sale.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish sale events",
			zap.String("sale_number", sale.SaleNumber),
			zap.Error(err),
		)
	}
	sale.ClearDomainEvents()
}
