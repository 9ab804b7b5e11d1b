package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/orgms/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// BalanceResponse represents the consolidated ledger balance
type BalanceResponse struct {
	Balance    decimal.Decimal `json:"balance"`
	EntryCount int64           `json:"entry_count"`
}

// StatementFilter represents filter options for the ledger statement
type StatementFilter struct {
	Search    string     `form:"search"`
	EntryType *string    `form:"entry_type" binding:"omitempty,oneof=credit debit"`
	Source    *string    `form:"source" binding:"omitempty,oneof=expense sale_payment other"`
	StartDate *time.Time `form:"start_date"`
	EndDate   *time.Time `form:"end_date"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// EntryResponse represents a ledger entry in API responses
type EntryResponse struct {
	ID          uuid.UUID       `json:"id"`
	Timestamp   time.Time       `json:"timestamp"`
	EntryType   string          `json:"entry_type"`
	Source      string          `json:"source"`
	Reference   string          `json:"reference"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// StatementResponse represents one page of the ledger statement
type StatementResponse struct {
	Entries     []EntryResponse `json:"entries"`
	Total       int64           `json:"total"`
	Page        int             `json:"page"`
	PageSize    int             `json:"page_size"`
	TotalPages  int             `json:"total_pages"`
	CreditTotal decimal.Decimal `json:"credit_total"`
	DebitTotal  decimal.Decimal `json:"debit_total"`
}

// RebuildResult summarizes a ledger rebuild run
type RebuildResult struct {
	DryRun   bool `json:"dry_run"`
	Scanned  int  `json:"scanned"`
	Inserted int  `json:"inserted"`
	Skipped  int  `json:"skipped"`
}

// ToEntryResponse maps a ledger entry to its API representation
func ToEntryResponse(entry *ledger.Entry) EntryResponse {
	return EntryResponse{
		ID:          entry.ID,
		Timestamp:   entry.Timestamp,
		EntryType:   string(entry.EntryType),
		Source:      string(entry.Source),
		Reference:   entry.Reference,
		Description: entry.Description,
		Amount:      entry.Amount,
	}
}

// ToEntryResponses maps a slice of ledger entries
func ToEntryResponses(entries []*ledger.Entry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = ToEntryResponse(entry)
	}
	return responses
}
