package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orgms/backend/internal/domain/finance"
	"github.com/orgms/backend/internal/domain/shared"
	"github.com/orgms/backend/internal/domain/shared/valueobject"
)

// ExpenseService handles expense recording and lookup. Creating an
// expense emits the event that posts its ledger debit; deleting one
// leaves the ledger untouched since entries are append-only.
type ExpenseService struct {
	expenses  finance.ExpenseRepository
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewExpenseService creates a new expense service
func NewExpenseService(expenseRepo finance.ExpenseRepository, logger *zap.Logger) *ExpenseService {
	return &ExpenseService{
		expenses: expenseRepo,
		logger:   logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *ExpenseService) SetEventPublisher(publisher shared.EventPublisher) {
	s.publisher = publisher
}

// Create records an expense
func (s *ExpenseService) Create(ctx context.Context, req CreateExpenseRequest) (*ExpenseResponse, error) {
	expenseDate := time.Now()
	if req.ExpenseDate != nil {
		expenseDate = *req.ExpenseDate
	}

	expense, err := finance.NewExpense(
		expenseDate,
		finance.ExpenseCategory(req.Category),
		req.Description,
		valueobject.NewMoneyBDT(req.Amount),
		req.PaidTo,
	)
	if err != nil {
		return nil, err
	}
	expense.ReceiptNumber = req.ReceiptNumber
	expense.PaymentMethod = req.PaymentMethod
	expense.Notes = req.Notes

	if err := s.expenses.Save(ctx, expense); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, expense)
	response := ToExpenseResponse(expense)
	return &response, nil
}

// Get retrieves an expense by ID
func (s *ExpenseService) Get(ctx context.Context, expenseID uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.expenses.FindByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	response := ToExpenseResponse(expense)
	return &response, nil
}

// List retrieves expenses with filtering and pagination
func (s *ExpenseService) List(ctx context.Context, filter ExpenseListFilter) ([]ExpenseResponse, int64, error) {
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
	if filter.Category != nil {
		domainFilter.Filters["category"] = *filter.Category
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}

	page, err := s.expenses.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToExpenseResponses(page.Items), page.Total, nil
}

// Delete removes an expense record. The ledger debit it posted, if any,
// stays in place.
func (s *ExpenseService) Delete(ctx context.Context, expenseID uuid.UUID) error {
	if _, err := s.expenses.FindByID(ctx, expenseID); err != nil {
		return err
	}
	return s.expenses.Delete(ctx, expenseID)
}

func (s *ExpenseService) publishEvents(ctx context.Context, expense *finance.Expense) {
	if s.publisher == nil {
		return
	}
	events := expense.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish expense events",
			zap.String("expense_id", expense.ID.String()),
			zap.Error(err),
		)
	}
	expense.ClearDomainEvents()
}
