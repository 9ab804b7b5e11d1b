package finance

import (
	"fmt"
	"time"

	"github.com/orgms/backend/internal/domain/shared"
	"github.com/orgms/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ExpenseCategory classifies an expense
type ExpenseCategory string

const (
	CategorySalary      ExpenseCategory = "salary"
	CategoryUtilities   ExpenseCategory = "utilities"
	CategoryMaintenance ExpenseCategory = "maintenance"
	CategoryTransport   ExpenseCategory = "transport"
	CategorySupplies    ExpenseCategory = "supplies"
	CategoryRent        ExpenseCategory = "rent"
	CategoryMarketing   ExpenseCategory = "marketing"
	CategoryOther       ExpenseCategory = "other"
)

// IsValid checks if the category is a known value
func (c ExpenseCategory) IsValid() bool {
	switch c {
	case CategorySalary, CategoryUtilities, CategoryMaintenance, CategoryTransport,
		CategorySupplies, CategoryRent, CategoryMarketing, CategoryOther:
		return true
	}
	return false
}

// Display returns the human-readable category label
func (c ExpenseCategory) Display() string {
	switch c {
	case CategorySalary:
		return "Salary"
	case CategoryUtilities:
		return "Utilities"
	case CategoryMaintenance:
		return "Maintenance"
	case CategoryTransport:
		return "Transport"
	case CategorySupplies:
		return "Supplies"
	case CategoryRent:
		return "Rent"
	case CategoryMarketing:
		return "Marketing"
	default:
		return "Other"
	}
}

// Expense is a money-out record. Each created expense posts one debit
// ledger entry keyed by its reference.
type Expense struct {
	shared.BaseAggregateRoot
	ExpenseDate   time.Time       `gorm:"not null;index"`
	Category      ExpenseCategory `gorm:"type:varchar(20);not null;default:'other'"`
	Description   string          `gorm:"type:varchar(255);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaidTo        string          `gorm:"type:varchar(200)"`
	ReceiptNumber string          `gorm:"type:varchar(100)"`
	PaymentMethod string          `gorm:"type:varchar(50)"`
	Notes         string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Expense) TableName() string {
	return "expenses"
}

// NewExpense creates an expense record
func NewExpense(expenseDate time.Time, category ExpenseCategory, description string, amount valueobject.Money, paidTo string) (*Expense, error) {
	if category == "" {
		category = CategoryOther
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Unknown expense category")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Expense description is required")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}
	if expenseDate.IsZero() {
		expenseDate = time.Now()
	}

	expense := &Expense{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ExpenseDate:       expenseDate,
		Category:          category,
		Description:       description,
		Amount:            amount.RoundMoney().Amount(),
		PaidTo:            paidTo,
	}

	expense.AddDomainEvent(NewExpenseRecordedEvent(expense))

	return expense, nil
}

// LedgerReference returns the deterministic ledger key for this expense
func (e *Expense) LedgerReference() string {
	return fmt.Sprintf("EXP-%s", e.ID)
}

// LedgerDescription returns the ledger entry description for this expense
func (e *Expense) LedgerDescription() string {
	return fmt.Sprintf("%s - %s", e.Category.Display(), e.Description)
}

// GetAmountMoney returns the expense amount as Money
func (e *Expense) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyBDT(e.Amount)
}

var _ shared.AggregateRoot = (*Expense)(nil)
