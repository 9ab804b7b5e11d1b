package ledger

import (
	"context"
	"fmt"

	"github.com/orgms/backend/internal/domain/finance"
	"github.com/orgms/backend/internal/domain/ledger"
	"github.com/orgms/backend/internal/domain/sales"
	"github.com/orgms/backend/internal/domain/shared"
	"github.com/orgms/backend/internal/domain/shared/valueobject"
)

// SalePaymentRecordedHandler posts a credit entry when a payment is
// recorded against a sale. The receipt number is the deduplication key.
type SalePaymentRecordedHandler struct {
	sync *Sync
}

// NewSalePaymentRecordedHandler creates a handler for sale payment events
func NewSalePaymentRecordedHandler(sync *Sync) *SalePaymentRecordedHandler {
	return &SalePaymentRecordedHandler{sync: sync}
}

// EventTypes returns the event types this handler is interested in
func (h *SalePaymentRecordedHandler) EventTypes() []string {
	return []string{sales.EventPaymentRecorded}
}

// Handle posts the credit entry for a recorded sale payment
func (h *SalePaymentRecordedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	recorded, ok := event.(*sales.PaymentRecordedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			sales.EventPaymentRecorded, event.EventType())
	}

	h.sync.Record(ctx,
		ledger.EntryCredit,
		ledger.SourceSalePayment,
		recorded.ReceiptNumber,
		fmt.Sprintf("Sale payment %s", recorded.SaleNumber),
		valueobject.NewMoneyBDT(recorded.Amount),
	)
	return nil
}

// ExpenseRecordedHandler posts a debit entry when an expense is created
type ExpenseRecordedHandler struct {
	sync *Sync
}

// NewExpenseRecordedHandler creates a handler for expense events
func NewExpenseRecordedHandler(sync *Sync) *ExpenseRecordedHandler {
	return &ExpenseRecordedHandler{sync: sync}
}

// EventTypes returns the event types this handler is interested in
func (h *ExpenseRecordedHandler) EventTypes() []string {
	return []string{finance.EventExpenseRecorded}
}

// Handle posts the debit entry for a recorded expense
func (h *ExpenseRecordedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	recorded, ok := event.(*finance.ExpenseRecordedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			finance.EventExpenseRecorded, event.EventType())
	}

	h.sync.Record(ctx,
		ledger.EntryDebit,
		ledger.SourceExpense,
		recorded.Reference,
		recorded.Description,
		valueobject.NewMoneyBDT(recorded.Amount),
	)
	return nil
}

// PaymentCompletedHandler posts a credit entry when a standalone payment
// transitions to completed. The invoice number is the deduplication key.
type PaymentCompletedHandler struct {
	sync *Sync
}

// NewPaymentCompletedHandler creates a handler for completed payment events
func NewPaymentCompletedHandler(sync *Sync) *PaymentCompletedHandler {
	return &PaymentCompletedHandler{sync: sync}
}

// EventTypes returns the event types this handler is interested in
func (h *PaymentCompletedHandler) EventTypes() []string {
	return []string{finance.EventPaymentCompleted}
}

// Handle posts the credit entry for a completed payment
func (h *PaymentCompletedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	completed, ok := event.(*finance.PaymentCompletedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			finance.EventPaymentCompleted, event.EventType())
	}

	h.sync.Record(ctx,
		ledger.EntryCredit,
		ledger.SourceOther,
		completed.InvoiceNumber,
		fmt.Sprintf("Payment - %s", completed.CustomerName),
		valueobject.NewMoneyBDT(completed.Amount),
	)
	return nil
}

// Ensure the handlers implement shared.EventHandler
var (
	_ shared.EventHandler = (*SalePaymentRecordedHandler)(nil)
	_ shared.EventHandler = (*ExpenseRecordedHandler)(nil)
	_ shared.EventHandler = (*PaymentCompletedHandler)(nil)
)
