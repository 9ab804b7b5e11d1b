package finance

import (
	"github.com/orgms/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event type constants for the finance context
const (
	EventExpenseRecorded  = "finance.expense.recorded"
	EventPaymentCompleted = "finance.payment.completed"
)

// ExpenseRecordedEvent is emitted when an expense is created.
// The ledger synchronization handler subscribes to this event.
type ExpenseRecordedEvent struct {
	shared.BaseDomainEvent
	Reference   string          `json:"reference"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
}

// NewExpenseRecordedEvent creates an expense recorded event
func NewExpenseRecordedEvent(expense *Expense) *ExpenseRecordedEvent {
	return &ExpenseRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventExpenseRecorded, "Expense", expense.ID),
		Reference:       expense.LedgerReference(),
		Description:     expense.LedgerDescription(),
		Amount:          expense.Amount,
		Category:        string(expense.Category),
	}
}

// PaymentCompletedEvent is emitted when a standalone payment completes.
// The ledger synchronization handler subscribes to this event.
type PaymentCompletedEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string          `json:"invoice_number"`
	CustomerName  string          `json:"customer_name"`
	Amount        decimal.Decimal `json:"amount"`
}

// NewPaymentCompletedEvent creates a payment completed event
func NewPaymentCompletedEvent(payment *Payment) *PaymentCompletedEvent {
	return &PaymentCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventPaymentCompleted, "Payment", payment.ID),
		InvoiceNumber:   payment.InvoiceNumber,
		CustomerName:    payment.CustomerName,
		Amount:          payment.LedgerAmount(),
	}
}
