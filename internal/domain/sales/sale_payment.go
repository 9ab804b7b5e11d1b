package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/orgms/backend/internal/domain/shared"
	"github.com/orgms/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodCard         PaymentMethod = "card"
	MethodCheque       PaymentMethod = "cheque"
	MethodOther        PaymentMethod = "other"
)

// IsValid checks if the payment method is a known value
func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodCash, MethodBankTransfer, MethodCard, MethodCheque, MethodOther:
		return true
	}
	return false
}

// SalePayment is an immutable payment record against a sale.
// Payments form an append-only sub-ledger; there is no edit or
// delete operation once a payment is recorded.
type SalePayment struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SaleID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ReceiptNumber string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentDate   time.Time       `gorm:"not null"`
	Method        PaymentMethod   `gorm:"type:varchar(20);not null;default:'cash'"`
	Notes         string          `gorm:"type:text"`
	CreatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SalePayment) TableName() string {
	return "sale_payments"
}

// NewSalePayment creates a payment record
func NewSalePayment(saleID uuid.UUID, receiptNumber string, amount valueobject.Money, paymentDate time.Time, method PaymentMethod, notes string) (*SalePayment, error) {
	if receiptNumber == "" {
		return nil, shared.NewDomainError("INVALID_RECEIPT_NUMBER", "Receipt number cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if method == "" {
		method = MethodCash
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_METHOD", "Unknown payment method")
	}
	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}

	return &SalePayment{
		ID:            uuid.New(),
		SaleID:        saleID,
		ReceiptNumber: receiptNumber,
		Amount:        amount.RoundMoney().Amount(),
		PaymentDate:   paymentDate,
		Method:        method,
		Notes:         notes,
		CreatedAt:     time.Now(),
	}, nil
}

// GetAmountMoney returns the payment amount as Money
func (p *SalePayment) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyBDT(p.Amount)
}
