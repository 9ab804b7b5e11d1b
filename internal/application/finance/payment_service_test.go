package finance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/orgms/backend/internal/domain/finance"
	"github.com/orgms/backend/internal/domain/shared"
	"github.com/orgms/backend/internal/domain/shared/valueobject"
)

func newPendingPayment(t *testing.T, invoiceNumber string, total float64) *finance.Payment {
	t.Helper()

	payment, err := finance.NewPayment(uuid.New(), "Karim Motors", finance.TypeFullPayment,
		invoiceNumber, valueobject.NewMoneyBDTFromFloat(total), time.Now())
	require.NoError(t, err)
	return payment
}

func TestCreatePayment(t *testing.T) {
	repo := new(MockPaymentRepository)
	service := NewPaymentService(repo, zap.NewNop())
	ctx := context.Background()

	repo.On("ExistsByInvoiceNumber", ctx, "INV-2026-0042").Return(false, nil)
	repo.On("Save", ctx, mock.AnythingOfType("*finance.Payment")).Return(nil)

	paid := decimal.NewFromInt(400)
	resp, err := service.Create(ctx, CreatePaymentRequest{
		CustomerID:    uuid.New(),
		CustomerName:  "Karim Motors",
		PaymentType:   "installment",
		InvoiceNumber: "INV-2026-0042",
		TotalAmount:   decimal.NewFromInt(1200),
		PaidAmount:    &paid,
	})

	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "installment", resp.PaymentType)
	assert.True(t, resp.PaidAmount.Equal(decimal.NewFromInt(400)))
	repo.AssertExpectations(t)
}

func TestCreatePayment_DuplicateInvoiceNumber(t *testing.T) {
	repo := new(MockPaymentRepository)
	service := NewPaymentService(repo, zap.NewNop())
	ctx := context.Background()

	repo.On("ExistsByInvoiceNumber", ctx, "INV-2026-0042").Return(true, nil)

	_, err := service.Create(ctx, CreatePaymentRequest{
		CustomerID:    uuid.New(),
		CustomerName:  "Karim Motors",
		InvoiceNumber: "INV-2026-0042",
		TotalAmount:   decimal.NewFromInt(1200),
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "DUPLICATE_INVOICE", domainErr.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCompletePayment_PublishesCompletedEvent(t *testing.T) {
	repo := new(MockPaymentRepository)
	publisher := &capturingPublisher{}
	service := NewPaymentService(repo, zap.NewNop())
	service.SetEventPublisher(publisher)
	ctx := context.Background()

	payment := newPendingPayment(t, "INV-2026-0042", 1200)

	repo.On("FindByID", ctx, payment.ID).Return(payment, nil)
	repo.On("Save", ctx, payment).Return(nil)

	paid := decimal.NewFromInt(1200)
	resp, err := service.Complete(ctx, payment.ID, CompletePaymentRequest{PaidAmount: &paid})

	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)
	require.NotNil(t, resp.CompletedAt)

	require.Len(t, publisher.events, 1)
	completed, ok := publisher.events[0].(*finance.PaymentCompletedEvent)
	require.True(t, ok)
	assert.Equal(t, "INV-2026-0042", completed.InvoiceNumber)
	assert.True(t, completed.Amount.Equal(decimal.NewFromInt(1200)))
	repo.AssertExpectations(t)
}

func TestCompletePayment_AlreadyCompleted(t *testing.T) {
	repo := new(MockPaymentRepository)
	service := NewPaymentService(repo, zap.NewNop())
	ctx := context.Background()

	payment := newPendingPayment(t, "INV-2026-0043", 600)
	require.NoError(t, payment.Complete())
	payment.ClearDomainEvents()

	repo.On("FindByID", ctx, payment.ID).Return(payment, nil)

	_, err := service.Complete(ctx, payment.ID, CompletePaymentRequest{})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_COMPLETED", domainErr.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestMarkOverdue(t *testing.T) {
	repo := new(MockPaymentRepository)
	service := NewPaymentService(repo, zap.NewNop())
	ctx := context.Background()

	payment := newPendingPayment(t, "INV-2026-0044", 900)

	repo.On("FindByID", ctx, payment.ID).Return(payment, nil)
	repo.On("Save", ctx, payment).Return(nil)

	resp, err := service.MarkOverdue(ctx, payment.ID)

	require.NoError(t, err)
	assert.Equal(t, "overdue", resp.Status)
	repo.AssertExpectations(t)
}

func TestCancelPayment_CompletedCannotBeCancelled(t *testing.T) {
	repo := new(MockPaymentRepository)
	service := NewPaymentService(repo, zap.NewNop())
	ctx := context.Background()

	payment := newPendingPayment(t, "INV-2026-0045", 500)
	require.NoError(t, payment.Complete())

	repo.On("FindByID", ctx, payment.ID).Return(payment, nil)

	_, err := service.Cancel(ctx, payment.ID)

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}

func TestListPayments_ForwardsStatusFilter(t *testing.T) {
	repo := new(MockPaymentRepository)
	service := NewPaymentService(repo, zap.NewNop())
	ctx := context.Background()

	payment := newPendingPayment(t, "INV-2026-0046", 700)
	page := shared.NewPaginated([]*finance.Payment{payment}, 1, 1, 20)

	status := "pending"
	repo.On("FindAll", ctx, mock.MatchedBy(func(filter shared.Filter) bool {
		return filter.Filters["status"] == status
	})).Return(&page, nil)

	responses, total, err := service.List(ctx, PaymentListFilter{Status: &status})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, responses, 1)
	assert.Equal(t, "INV-2026-0046", responses[0].InvoiceNumber)
}
