package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/orgms/backend/internal/domain/finance"
	"github.com/orgms/backend/internal/domain/ledger"
	"github.com/orgms/backend/internal/domain/sales"
	"github.com/orgms/backend/internal/domain/shared"
	"github.com/orgms/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSalePaymentRecordedHandler(t *testing.T) {
	t.Run("posts a credit keyed by receipt number", func(t *testing.T) {
		entryRepo := new(MockEntryRepository)
		handler := NewSalePaymentRecordedHandler(NewSync(entryRepo, zap.NewNop()))

		sale, err := sales.NewSale("SAL-20260828-0001", uuid.New(), "Rahim Traders", sales.StatusDraft)
		require.NoError(t, err)
		_, err = sale.AddNonInventoryItem("service charge", 2, valueobject.NewMoneyBDTFromFloat(50))
		require.NoError(t, err)
		require.NoError(t, sale.Finalize("admin"))
		payment, err := sale.AddPayment("RCT-20260828-A7K2MQ",
			valueobject.NewMoneyBDTFromFloat(25), time.Now(), sales.MethodCash, "")
		require.NoError(t, err)

		entryRepo.On("Append", mock.Anything, mock.MatchedBy(func(e *ledger.Entry) bool {
			return e.EntryType == ledger.EntryCredit &&
				e.Source == ledger.SourceSalePayment &&
				e.Reference == payment.ReceiptNumber &&
				e.Amount.Equal(payment.Amount)
		})).Return(true, nil)

		err = handler.Handle(context.Background(), sales.NewPaymentRecordedEvent(sale, payment))

		assert.NoError(t, err)
		entryRepo.AssertExpectations(t)
	})

	t.Run("rejects foreign event types", func(t *testing.T) {
		entryRepo := new(MockEntryRepository)
		handler := NewSalePaymentRecordedHandler(NewSync(entryRepo, zap.NewNop()))

		otherEvent := shared.NewBaseDomainEvent("sales.sale.created", "Sale", uuid.New())
		err := handler.Handle(context.Background(), &otherEvent)

		assert.Error(t, err)
		entryRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})
}

func TestExpenseRecordedHandler(t *testing.T) {
	entryRepo := new(MockEntryRepository)
	handler := NewExpenseRecordedHandler(NewSync(entryRepo, zap.NewNop()))

	expense, err := finance.NewExpense(time.Now(), finance.CategoryUtilities,
		"electricity bill", valueobject.NewMoneyBDTFromFloat(3200), "DESCO")
	require.NoError(t, err)

	entryRepo.On("Append", mock.Anything, mock.MatchedBy(func(e *ledger.Entry) bool {
		return e.EntryType == ledger.EntryDebit &&
			e.Source == ledger.SourceExpense &&
			e.Reference == expense.LedgerReference() &&
			e.Description == "Utilities - electricity bill"
	})).Return(true, nil)

	err = handler.Handle(context.Background(), finance.NewExpenseRecordedEvent(expense))

	assert.NoError(t, err)
	entryRepo.AssertExpectations(t)
}

func TestPaymentCompletedHandler(t *testing.T) {
	entryRepo := new(MockEntryRepository)
	handler := NewPaymentCompletedHandler(NewSync(entryRepo, zap.NewNop()))

	payment, err := finance.NewPayment(uuid.New(), "Karim Motors",
		finance.TypeInstallment, "INV-2026-0099",
		valueobject.NewMoneyBDTFromFloat(10000), time.Now())
	require.NoError(t, err)
	require.NoError(t, payment.RecordPaidAmount(valueobject.NewMoneyBDTFromFloat(4000)))
	require.NoError(t, payment.Complete())

	entryRepo.On("Append", mock.Anything, mock.MatchedBy(func(e *ledger.Entry) bool {
		return e.EntryType == ledger.EntryCredit &&
			e.Source == ledger.SourceOther &&
			e.Reference == "INV-2026-0099" &&
			e.Amount.Equal(payment.LedgerAmount())
	})).Return(true, nil)

	err = handler.Handle(context.Background(), finance.NewPaymentCompletedEvent(payment))

	assert.NoError(t, err)
	entryRepo.AssertExpectations(t)
}

func TestHandlerEventTypes(t *testing.T) {
	sync := NewSync(new(MockEntryRepository), zap.NewNop())

	assert.Equal(t, []string{sales.EventPaymentRecorded}, NewSalePaymentRecordedHandler(sync).EventTypes())
	assert.Equal(t, []string{finance.EventExpenseRecorded}, NewExpenseRecordedHandler(sync).EventTypes())
	assert.Equal(t, []string{finance.EventPaymentCompleted}, NewPaymentCompletedHandler(sync).EventTypes())
}
