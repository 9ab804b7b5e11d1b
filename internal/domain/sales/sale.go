package sales

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/orgms/backend/internal/domain/shared"
	"github.com/orgms/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// SaleStatus represents the lifecycle status of a sale
type SaleStatus string

const (
	StatusDraft     SaleStatus = "draft"
	StatusQuote     SaleStatus = "quote"
	StatusFinalized SaleStatus = "finalized"
	StatusCancelled SaleStatus = "cancelled"
)

// IsValid checks if the status is a known value
func (s SaleStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusQuote, StatusFinalized, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of the status
func (s SaleStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s SaleStatus) CanTransitionTo(target SaleStatus) bool {
	switch s {
	case StatusDraft:
		return target == StatusFinalized || target == StatusCancelled
	case StatusQuote:
		return target == StatusDraft || target == StatusCancelled
	case StatusFinalized, StatusCancelled:
		return false // Terminal states
	}
	return false
}

// Sale is the aggregate root for the sales lifecycle.
// It owns its line items and payments; the total is always the
// full re-sum of the items' line totals.
type Sale struct {
	shared.BaseAggregateRoot
	SaleNumber           string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerName         string          `gorm:"type:varchar(200);not null"`
	Status               SaleStatus      `gorm:"type:varchar(20);not null;default:'draft'"`
	TotalAmount          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ExpectedInstallments int             `gorm:"not null;default:1"`
	Notes                string          `gorm:"type:text"`
	FinalizedAt          *time.Time
	FinalizedBy          string `gorm:"type:varchar(100)"`
	CancelledAt          *time.Time
	CancelReason         string `gorm:"type:varchar(255)"`

	Items    []SaleItem    `gorm:"foreignKey:SaleID;references:ID"`
	Payments []SalePayment `gorm:"foreignKey:SaleID;references:ID"`
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// NewSale creates a sale in draft or quote status
func NewSale(saleNumber string, customerID uuid.UUID, customerName string, status SaleStatus) (*Sale, error) {
	if saleNumber == "" {
		return nil, shared.NewDomainError("INVALID_SALE_NUMBER", "Sale number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if status == "" {
		status = StatusDraft
	}
	if status != StatusDraft && status != StatusQuote {
		return nil, shared.NewDomainError("INVALID_STATUS", "A sale starts as draft or quote")
	}

	sale := &Sale{
		BaseAggregateRoot:    shared.NewBaseAggregateRoot(),
		SaleNumber:           saleNumber,
		CustomerID:           customerID,
		CustomerName:         customerName,
		Status:               status,
		TotalAmount:          decimal.Zero,
		ExpectedInstallments: 1,
		Items:                make([]SaleItem, 0),
		Payments:             make([]SalePayment, 0),
	}

	sale.AddDomainEvent(NewSaleCreatedEvent(sale))

	return sale, nil
}

// AddInventoryItem adds an inventory-backed line item.
// Allowed while the sale is draft or quote. The unit price must come
// from the referenced stock item, not from user input.
func (s *Sale) AddInventoryItem(stockItemID uuid.UUID, partName, partCode string, quantity int64, unitPrice valueobject.Money) (*SaleItem, error) {
	if err := s.guardItemMutation(false); err != nil {
		return nil, err
	}

	item, err := NewInventorySaleItem(s.ID, stockItemID, partName, partCode, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	s.Items = append(s.Items, *item)
	s.recalcTotal()
	s.UpdatedAt = time.Now()

	return item, nil
}

// AddNonInventoryItem adds a free-text line item (machine work, services)
func (s *Sale) AddNonInventoryItem(description string, quantity int64, unitPrice valueobject.Money) (*SaleItem, error) {
	if err := s.guardItemMutation(false); err != nil {
		return nil, err
	}

	item, err := NewNonInventorySaleItem(s.ID, description, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	s.Items = append(s.Items, *item)
	s.recalcTotal()
	s.UpdatedAt = time.Now()

	return item, nil
}

// RemoveItem deletes a line item. Allowed only while the sale is draft.
// Removing an item below the paid total is permitted; the balance due
// simply goes negative until corrected.
func (s *Sale) RemoveItem(itemID uuid.UUID) error {
	if err := s.guardItemMutation(true); err != nil {
		return err
	}

	for idx, item := range s.Items {
		if item.ID == itemID {
			s.Items = append(s.Items[:idx], s.Items[idx+1:]...)
			s.recalcTotal()
			s.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Sale item not found")
}

// guardItemMutation rejects item changes based on status.
// draftOnly restricts the mutation to draft sales; otherwise quote
// sales may be modified too.
func (s *Sale) guardItemMutation(draftOnly bool) error {
	switch s.Status {
	case StatusFinalized:
		return shared.NewDomainError("SALE_FINALIZED", "Cannot modify items of a finalized sale")
	case StatusCancelled:
		return shared.NewDomainError("SALE_CANCELLED", "Cannot modify items of a cancelled sale")
	case StatusQuote:
		if draftOnly {
			return shared.NewDomainError("INVALID_STATE", "Operation allowed only on draft sales")
		}
	}
	return nil
}

// ConvertToDraft converts a quote into a draft invoice. No side effects.
func (s *Sale) ConvertToDraft() error {
	if s.Status != StatusQuote {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot convert sale in %s status", s.Status))
	}

	s.Status = StatusDraft
	s.UpdatedAt = time.Now()

	s.AddDomainEvent(NewSaleConvertedEvent(s))

	return nil
}

// Finalize flips the sale to finalized. Stock decrements and history
// records are orchestrated by the application service around this call
// in a single transaction.
func (s *Sale) Finalize(actor string) error {
	if s.Status == StatusFinalized {
		return shared.NewDomainError("ALREADY_FINALIZED", "Sale is already finalized")
	}
	if !s.Status.CanTransitionTo(StatusFinalized) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot finalize sale in %s status", s.Status))
	}
	if len(s.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot finalize sale without items")
	}
	if actor == "" {
		return shared.NewDomainError("INVALID_ACTOR", "Finalizing actor is required")
	}

	now := time.Now()
	s.Status = StatusFinalized
	s.FinalizedAt = &now
	s.FinalizedBy = actor
	s.UpdatedAt = now

	s.AddDomainEvent(NewSaleFinalizedEvent(s))

	return nil
}

// Cancel cancels a draft or quote sale. No stock side effects: only
// finalized sales touch stock and those cannot be cancelled.
func (s *Sale) Cancel(actor, reason string) error {
	if !s.Status.CanTransitionTo(StatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel sale in %s status", s.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}

	now := time.Now()
	s.Status = StatusCancelled
	s.CancelledAt = &now
	s.CancelReason = reason
	s.UpdatedAt = now

	s.AddDomainEvent(NewSaleCancelledEvent(s, actor))

	return nil
}

// AddPayment records a payment against the sale.
// Quotes and cancelled sales cannot take payments; the amount must not
// push the paid total past the sale total.
func (s *Sale) AddPayment(receiptNumber string, amount valueobject.Money, paymentDate time.Time, method PaymentMethod, notes string) (*SalePayment, error) {
	if s.Status == StatusCancelled {
		return nil, shared.NewDomainError("SALE_CANCELLED", "Cannot add payment to a cancelled sale")
	}
	if s.Status == StatusQuote {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add payment to a quote")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}

	remaining := s.BalanceDue()
	if amount.RoundMoney().Amount().GreaterThan(remaining) {
		return nil, shared.NewDomainError("EXCEEDS_BALANCE",
			fmt.Sprintf("Payment of %s exceeds remaining balance of %s", amount.StringFixed(2), remaining.StringFixed(2)))
	}

	payment, err := NewSalePayment(s.ID, receiptNumber, amount, paymentDate, method, notes)
	if err != nil {
		return nil, err
	}

	s.Payments = append(s.Payments, *payment)
	s.UpdatedAt = time.Now()

	s.AddDomainEvent(NewPaymentRecordedEvent(s, payment))

	return payment, nil
}

// recalcTotal re-sums all line totals. Always a full re-sum, never an
// incremental update, so rounding drift cannot accumulate.
func (s *Sale) recalcTotal() {
	total := decimal.Zero
	for _, item := range s.Items {
		total = total.Add(item.LineTotal)
	}
	s.TotalAmount = total.Round(valueobject.MoneyScale)
}

// PaidTotal returns the sum of all recorded payment amounts
func (s *Sale) PaidTotal() decimal.Decimal {
	total := decimal.Zero
	for _, p := range s.Payments {
		total = total.Add(p.Amount)
	}
	return total
}

// BalanceDue returns total minus paid. May be negative if a draft
// item was removed after a payment was taken.
func (s *Sale) BalanceDue() decimal.Decimal {
	return s.TotalAmount.Sub(s.PaidTotal())
}

// IsFullyPaid returns true when the balance due is zero or less
func (s *Sale) IsFullyPaid() bool {
	return s.BalanceDue().LessThanOrEqual(decimal.Zero)
}

// GetTotalAmountMoney returns the total as Money
func (s *Sale) GetTotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyBDT(s.TotalAmount)
}

// GetBalanceDueMoney returns the balance due as Money
func (s *Sale) GetBalanceDueMoney() valueobject.Money {
	return valueobject.NewMoneyBDT(s.BalanceDue())
}

// SetExpectedInstallments sets the planned number of payment installments
func (s *Sale) SetExpectedInstallments(n int) error {
	if n < 1 {
		return shared.NewDomainError("INVALID_INSTALLMENTS", "Expected installments must be at least 1")
	}
	s.ExpectedInstallments = n
	s.UpdatedAt = time.Now()
	return nil
}

// SetNotes sets the sale notes
func (s *Sale) SetNotes(notes string) {
	s.Notes = notes
	s.UpdatedAt = time.Now()
}

// GetItem returns a line item by its ID, or nil
func (s *Sale) GetItem(itemID uuid.UUID) *SaleItem {
	for idx := range s.Items {
		if s.Items[idx].ID == itemID {
			return &s.Items[idx]
		}
	}
	return nil
}

// InventoryItems returns the inventory-backed line items
func (s *Sale) InventoryItems() []SaleItem {
	items := make([]SaleItem, 0)
	for _, item := range s.Items {
		if item.IsInventory() {
			items = append(items, item)
		}
	}
	return items
}

// IsDraft returns true if the sale is a draft
func (s *Sale) IsDraft() bool {
	return s.Status == StatusDraft
}

// IsQuote returns true if the sale is a quote
func (s *Sale) IsQuote() bool {
	return s.Status == StatusQuote
}

// IsFinalized returns true if the sale is finalized
func (s *Sale) IsFinalized() bool {
	return s.Status == StatusFinalized
}

// IsCancelled returns true if the sale is cancelled
func (s *Sale) IsCancelled() bool {
	return s.Status == StatusCancelled
}

// CanDelete returns true if the sale may be hard-deleted
func (s *Sale) CanDelete() bool {
	return s.Status == StatusDraft
}

var _ shared.AggregateRoot = (*Sale)(nil)
