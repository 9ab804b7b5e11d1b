package sales

import (
	"context"

	"github.com/google/uuid"
	"github.com/orgms/backend/internal/domain/shared"
)

// SaleRepository defines persistence operations for sales
type SaleRepository interface {
	// FindByID loads a sale with its items and payments
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)
	FindBySaleNumber(ctx context.Context, saleNumber string) (*Sale, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*Sale], error)
	// Save persists the sale and reconciles its items and payments
	Save(ctx context.Context, sale *Sale) error
	// SaveWithLock persists with an optimistic version check
	SaveWithLock(ctx context.Context, sale *Sale, expectedVersion int) error
	// Delete hard-deletes a sale with its items and payments
	Delete(ctx context.Context, id uuid.UUID) error
	// GenerateSaleNumber produces the next unique sale number (SAL-YYYYMMDD-NNNN)
	GenerateSaleNumber(ctx context.Context) (string, error)
	// GenerateReceiptNumber produces a unique receipt number (RCT-YYYYMMDD-XXXXXX)
	GenerateReceiptNumber(ctx context.Context) (string, error)
	// FindPaymentByReceiptNumber looks up a payment by its receipt number
	FindPaymentByReceiptNumber(ctx context.Context, receiptNumber string) (*SalePayment, error)
	// FindAllPayments returns every payment across all sales, for ledger rebuild
	FindAllPayments(ctx context.Context) ([]*SalePayment, error)
}
