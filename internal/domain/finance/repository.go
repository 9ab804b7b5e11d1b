package finance

import (
	"context"

	"github.com/google/uuid"
	"github.com/orgms/backend/internal/domain/shared"
)

// ExpenseRepository defines persistence operations for expenses
type ExpenseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Expense, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*Expense], error)
	// FindAllUnpaged returns every expense, for ledger rebuild
	FindAllUnpaged(ctx context.Context) ([]*Expense, error)
	Save(ctx context.Context, expense *Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PaymentRepository defines persistence operations for standalone payments
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindByInvoiceNumber(ctx context.Context, invoiceNumber string) (*Payment, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*Payment], error)
	// FindCompleted returns every completed payment, for ledger rebuild
	FindCompleted(ctx context.Context) ([]*Payment, error)
	Save(ctx context.Context, payment *Payment) error
	ExistsByInvoiceNumber(ctx context.Context, invoiceNumber string) (bool, error)
}
