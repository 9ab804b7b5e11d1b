package ledger

import (
	"context"

	"github.com/orgms/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Statement is one page of the journal with totals computed over the
// whole journal, not just the page.
type Statement struct {
	Entries     *shared.Paginated[*Entry]
	CreditTotal decimal.Decimal
	DebitTotal  decimal.Decimal
}

// EntryRepository defines persistence operations for the ledger journal.
// The journal is append-only: there is no update or delete.
type EntryRepository interface {
	// Append inserts the entry unless the (source, reference) pair already
	// exists. Returns true when a row was inserted, false on duplicate.
	Append(ctx context.Context, entry *Entry) (bool, error)
	// Exists reports whether an entry with the (source, reference) pair is present
	Exists(ctx context.Context, source Source, reference string) (bool, error)
	// Balance returns sum(credits) - sum(debits) over the whole journal
	Balance(ctx context.Context) (decimal.Decimal, error)
	// Statement returns a timestamp-descending page with journal-wide
	// credit and debit subtotals
	Statement(ctx context.Context, filter shared.Filter) (*Statement, error)
	// Count returns the number of entries in the journal
	Count(ctx context.Context) (int64, error)
}
