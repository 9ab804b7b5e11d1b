package ledger

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/orgms/backend/internal/domain/shared"
	"github.com/orgms/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// EntryType classifies a ledger entry as money in or money out
type EntryType string

const (
	EntryCredit EntryType = "credit"
	EntryDebit  EntryType = "debit"
)

// IsValid checks if the entry type is a known value
func (t EntryType) IsValid() bool {
	return t == EntryCredit || t == EntryDebit
}

// Source identifies which kind of business event produced an entry
type Source string

const (
	SourceExpense     Source = "expense"
	SourceSalePayment Source = "sale_payment"
	SourceOther       Source = "other"
)

// IsValid checks if the source is a known value
func (s Source) IsValid() bool {
	switch s {
	case SourceExpense, SourceSalePayment, SourceOther:
		return true
	}
	return false
}

// maxDescriptionLen caps entry descriptions; longer text is truncated
const maxDescriptionLen = 255

// Entry is a single row of the append-only financial journal.
// Entries are never updated or deleted; the (source, reference) pair
// is the sole deduplication key, so the same business event posts at
// most once no matter how many code paths attempt it. Entries carry
// no foreign keys: they reference their origin only by string.
type Entry struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Timestamp   time.Time       `gorm:"not null;index"`
	EntryType   EntryType       `gorm:"type:varchar(10);not null"`
	Source      Source          `gorm:"type:varchar(20);not null;uniqueIndex:idx_ledger_source_reference,priority:1"`
	Reference   string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_ledger_source_reference,priority:2"`
	Description string          `gorm:"type:varchar(255)"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Entry) TableName() string {
	return "ledger_entries"
}

// NewEntry creates a ledger entry
func NewEntry(entryType EntryType, source Source, reference, description string, amount valueobject.Money) (*Entry, error) {
	if !entryType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ENTRY_TYPE", "Entry type must be credit or debit")
	}
	if source == "" {
		source = SourceOther
	}
	if !source.IsValid() {
		return nil, shared.NewDomainError("INVALID_SOURCE", "Unknown ledger source")
	}
	if reference == "" {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Reference cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Ledger amount must be positive")
	}

	if utf8.RuneCountInString(description) > maxDescriptionLen {
		description = string([]rune(description)[:maxDescriptionLen])
	}

	now := time.Now()
	return &Entry{
		ID:          uuid.New(),
		Timestamp:   now,
		EntryType:   entryType,
		Source:      source,
		Reference:   reference,
		Description: description,
		Amount:      amount.RoundMoney().Amount(),
		CreatedAt:   now,
	}, nil
}

// IsCredit returns true for credit entries
func (e *Entry) IsCredit() bool {
	return e.EntryType == EntryCredit
}

// SignedAmount returns the amount with credits positive and debits negative
func (e *Entry) SignedAmount() decimal.Decimal {
	if e.IsCredit() {
		return e.Amount
	}
	return e.Amount.Neg()
}

// GetAmountMoney returns the amount as Money
func (e *Entry) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyBDT(e.Amount)
}
