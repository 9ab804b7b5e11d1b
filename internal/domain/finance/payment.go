package finance

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/orgms/backend/internal/domain/shared"
	"github.com/orgms/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PaymentType classifies a standalone payment plan
type PaymentType string

const (
	TypeDownPayment PaymentType = "down_payment"
	TypeInstallment PaymentType = "installment"
	TypeFullPayment PaymentType = "full_payment"
)

// IsValid checks if the payment type is a known value
func (t PaymentType) IsValid() bool {
	switch t {
	case TypeDownPayment, TypeInstallment, TypeFullPayment:
		return true
	}
	return false
}

// PaymentStatus represents the collection state of a standalone payment
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentOverdue   PaymentStatus = "overdue"
	PaymentCancelled PaymentStatus = "cancelled"
)

// IsValid checks if the payment status is a known value
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentOverdue, PaymentCancelled:
		return true
	}
	return false
}

// Payment is a standalone invoice-payment record kept outside the sale
// lifecycle. It predates sale payments and feeds the ledger through a
// separate path: completing a payment posts one credit entry with
// source "other" keyed by the invoice number.
type Payment struct {
	shared.BaseAggregateRoot
	CustomerID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerName    string          `gorm:"type:varchar(200);not null"`
	PaymentType     PaymentType     `gorm:"type:varchar(20);not null;default:'full_payment'"`
	InvoiceNumber   string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaidAmount      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PaymentDate     time.Time       `gorm:"not null"`
	NextPaymentDate *time.Time
	Status          PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	Notes           string        `gorm:"type:text"`
	CompletedAt     *time.Time
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// NewPayment creates a standalone payment record in pending status
func NewPayment(customerID uuid.UUID, customerName string, paymentType PaymentType, invoiceNumber string, totalAmount valueobject.Money, paymentDate time.Time) (*Payment, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if paymentType == "" {
		paymentType = TypeFullPayment
	}
	if !paymentType.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_TYPE", "Unknown payment type")
	}
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if !totalAmount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Total amount must be positive")
	}
	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}

	return &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		CustomerName:      customerName,
		PaymentType:       paymentType,
		InvoiceNumber:     invoiceNumber,
		TotalAmount:       totalAmount.RoundMoney().Amount(),
		PaidAmount:        decimal.Zero,
		PaymentDate:       paymentDate,
		Status:            PaymentPending,
	}, nil
}

// RecordPaidAmount sets the amount actually collected so far
func (p *Payment) RecordPaidAmount(amount valueobject.Money) error {
	if p.Status == PaymentCompleted || p.Status == PaymentCancelled {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot update a %s payment", p.Status))
	}
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Paid amount cannot be negative")
	}

	p.PaidAmount = amount.RoundMoney().Amount()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// Complete marks the payment as collected and emits the event that
// posts its ledger credit
func (p *Payment) Complete() error {
	if p.Status == PaymentCompleted {
		return shared.NewDomainError("ALREADY_COMPLETED", "Payment is already completed")
	}
	if p.Status == PaymentCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cannot complete a cancelled payment")
	}

	now := time.Now()
	p.Status = PaymentCompleted
	p.CompletedAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()

	p.AddDomainEvent(NewPaymentCompletedEvent(p))

	return nil
}

// MarkOverdue flags a pending payment as overdue
func (p *Payment) MarkOverdue() error {
	if p.Status != PaymentPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot mark a %s payment overdue", p.Status))
	}
	p.Status = PaymentOverdue
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// Cancel voids a payment that was never collected
func (p *Payment) Cancel() error {
	if p.Status == PaymentCompleted {
		return shared.NewDomainError("INVALID_STATE", "Cannot cancel a completed payment")
	}
	if p.Status == PaymentCancelled {
		return shared.NewDomainError("INVALID_STATE", "Payment is already cancelled")
	}
	p.Status = PaymentCancelled
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// LedgerAmount returns the amount the ledger credit should carry:
// the collected amount when present, otherwise the invoice total.
func (p *Payment) LedgerAmount() decimal.Decimal {
	if p.PaidAmount.IsPositive() {
		return p.PaidAmount
	}
	return p.TotalAmount
}

// LedgerDescription returns the ledger entry description
func (p *Payment) LedgerDescription() string {
	return fmt.Sprintf("Payment - %s", p.CustomerName)
}

var _ shared.AggregateRoot = (*Payment)(nil)
