package persistence

import (
	"context"
	"time"

	"github.com/orgms/backend/internal/domain/ledger"
	"github.com/orgms/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormEntryRepository implements EntryRepository using GORM
type GormEntryRepository struct {
	db *gorm.DB
}

// NewGormEntryRepository creates a new GormEntryRepository
func NewGormEntryRepository(db *gorm.DB) *GormEntryRepository {
	return &GormEntryRepository{db: db}
}

// Append inserts the entry unless its (source, reference) pair already
// exists. The unique index makes the insert race-safe; conflicting inserts
// become no-ops and Append reports false.
func (r *GormEntryRepository) Append(ctx context.Context, entry *ledger.Entry) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "source"}, {Name: "reference"}},
			DoNothing: true,
		}).
		Create(entry)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Exists reports whether an entry with the (source, reference) pair is present
func (r *GormEntryRepository) Exists(ctx context.Context, source ledger.Source, reference string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&ledger.Entry{}).
		Where("source = ? AND reference = ?", source, reference).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Balance returns sum(credits) - sum(debits) over the whole journal
func (r *GormEntryRepository) Balance(ctx context.Context) (decimal.Decimal, error) {
	var balance decimal.Decimal
	row := r.db.WithContext(ctx).
		Model(&ledger.Entry{}).
		Select("COALESCE(SUM(CASE WHEN entry_type = ? THEN amount ELSE -amount END), 0)", ledger.EntryCredit).
		Row()
	if err := row.Scan(&balance); err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}

// Statement returns a timestamp-descending page of entries with credit and
// debit subtotals computed over everything the filter matches, not just
// the returned page.
func (r *GormEntryRepository) Statement(ctx context.Context, filter shared.Filter) (*ledger.Statement, error) {
	var total int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&ledger.Entry{}), filter).
		Count(&total).Error; err != nil {
		return nil, err
	}

	var creditTotal, debitTotal decimal.Decimal
	row := r.applyFilter(r.db.WithContext(ctx).Model(&ledger.Entry{}), filter).
		Select(
			"COALESCE(SUM(CASE WHEN entry_type = ? THEN amount ELSE 0 END), 0), "+
				"COALESCE(SUM(CASE WHEN entry_type = ? THEN amount ELSE 0 END), 0)",
			ledger.EntryCredit, ledger.EntryDebit,
		).
		Row()
	if err := row.Scan(&creditTotal, &debitTotal); err != nil {
		return nil, err
	}

	var entries []*ledger.Entry
	query := applyPagination(
		r.applyFilter(r.db.WithContext(ctx).Model(&ledger.Entry{}), filter),
		filter, "timestamp DESC",
	)
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}

	page, pageSize := pageOf(filter)
	paginated := shared.NewPaginated(entries, total, page, pageSize)
	return &ledger.Statement{
		Entries:     &paginated,
		CreditTotal: creditTotal,
		DebitTotal:  debitTotal,
	}, nil
}

// Count returns the number of entries in the journal
func (r *GormEntryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&ledger.Entry{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies search and field filters to the query
func (r *GormEntryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("description ILIKE ? OR reference ILIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "entry_type":
			query = query.Where("entry_type = ?", value)
		case "source":
			query = query.Where("source = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("timestamp >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("timestamp <= ?", t)
			}
		}
	}

	return query
}

// Ensure GormEntryRepository implements EntryRepository
var _ ledger.EntryRepository = (*GormEntryRepository)(nil)
