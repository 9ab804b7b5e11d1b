package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/orgms/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event type constants for the sales context
const (
	EventSaleCreated     = "sales.sale.created"
	EventSaleConverted   = "sales.sale.converted"
	EventSaleFinalized   = "sales.sale.finalized"
	EventSaleCancelled   = "sales.sale.cancelled"
	EventPaymentRecorded = "sales.payment.recorded"
)

// SaleCreatedEvent is emitted when a sale is created
type SaleCreatedEvent struct {
	shared.BaseDomainEvent
	SaleNumber   string    `json:"sale_number"`
	CustomerID   uuid.UUID `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	Status       string    `json:"status"`
}

// NewSaleCreatedEvent creates a sale created event
func NewSaleCreatedEvent(sale *Sale) *SaleCreatedEvent {
	return &SaleCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventSaleCreated, "Sale", sale.ID),
		SaleNumber:      sale.SaleNumber,
		CustomerID:      sale.CustomerID,
		CustomerName:    sale.CustomerName,
		Status:          sale.Status.String(),
	}
}

// SaleConvertedEvent is emitted when a quote becomes a draft invoice
type SaleConvertedEvent struct {
	shared.BaseDomainEvent
	SaleNumber string `json:"sale_number"`
}

// NewSaleConvertedEvent creates a quote conversion event
func NewSaleConvertedEvent(sale *Sale) *SaleConvertedEvent {
	return &SaleConvertedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventSaleConverted, "Sale", sale.ID),
		SaleNumber:      sale.SaleNumber,
	}
}

// SaleFinalizedEvent is emitted when a sale is finalized
type SaleFinalizedEvent struct {
	shared.BaseDomainEvent
	SaleNumber  string          `json:"sale_number"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	FinalizedBy string          `json:"finalized_by"`
	FinalizedAt time.Time       `json:"finalized_at"`
}

// NewSaleFinalizedEvent creates a sale finalized event
func NewSaleFinalizedEvent(sale *Sale) *SaleFinalizedEvent {
	return &SaleFinalizedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventSaleFinalized, "Sale", sale.ID),
		SaleNumber:      sale.SaleNumber,
		TotalAmount:     sale.TotalAmount,
		FinalizedBy:     sale.FinalizedBy,
		FinalizedAt:     *sale.FinalizedAt,
	}
}

// SaleCancelledEvent is emitted when a sale is cancelled
type SaleCancelledEvent struct {
	shared.BaseDomainEvent
	SaleNumber string `json:"sale_number"`
	Actor      string `json:"actor"`
	Reason     string `json:"reason"`
}

// NewSaleCancelledEvent creates a sale cancelled event
func NewSaleCancelledEvent(sale *Sale, actor string) *SaleCancelledEvent {
	return &SaleCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventSaleCancelled, "Sale", sale.ID),
		SaleNumber:      sale.SaleNumber,
		Actor:           actor,
		Reason:          sale.CancelReason,
	}
}

// PaymentRecordedEvent is emitted when a payment is recorded against a sale.
// The ledger synchronization handler subscribes to this event.
type PaymentRecordedEvent struct {
	shared.BaseDomainEvent
	SaleNumber    string          `json:"sale_number"`
	PaymentID     uuid.UUID       `json:"payment_id"`
	ReceiptNumber string          `json:"receipt_number"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
}

// NewPaymentRecordedEvent creates a payment recorded event
func NewPaymentRecordedEvent(sale *Sale, payment *SalePayment) *PaymentRecordedEvent {
	return &PaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventPaymentRecorded, "Sale", sale.ID),
		SaleNumber:      sale.SaleNumber,
		PaymentID:       payment.ID,
		ReceiptNumber:   payment.ReceiptNumber,
		Amount:          payment.Amount,
		Method:          string(payment.Method),
	}
}
