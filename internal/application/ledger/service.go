package ledger

import (
	"context"
	"fmt"

	"github.com/orgms/backend/internal/domain/finance"
	"github.com/orgms/backend/internal/domain/ledger"
	"github.com/orgms/backend/internal/domain/sales"
	"github.com/orgms/backend/internal/domain/shared"
	"github.com/orgms/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// Service exposes read operations over the ledger journal and the
// rebuild tool that backfills entries from source records.
type Service struct {
	entries  ledger.EntryRepository
	sales    sales.SaleRepository
	expenses finance.ExpenseRepository
	payments finance.PaymentRepository
	pageSize int
	logger   *zap.Logger
}

// NewService creates a new ledger service. pageSize is the statement
// page size used when the caller does not ask for one.
func NewService(
	entries ledger.EntryRepository,
	saleRepo sales.SaleRepository,
	expenseRepo finance.ExpenseRepository,
	paymentRepo finance.PaymentRepository,
	pageSize int,
	logger *zap.Logger,
) *Service {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &Service{
		entries:  entries,
		sales:    saleRepo,
		expenses: expenseRepo,
		payments: paymentRepo,
		pageSize: pageSize,
		logger:   logger,
	}
}

// Balance returns the consolidated ledger balance (credits minus debits)
func (s *Service) Balance(ctx context.Context) (*BalanceResponse, error) {
	balance, err := s.entries.Balance(ctx)
	if err != nil {
		return nil, err
	}
	count, err := s.entries.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &BalanceResponse{Balance: balance, EntryCount: count}, nil
}

// Statement returns one timestamp-descending page of the journal with
// credit and debit subtotals over everything the filter matches.
func (s *Service) Statement(ctx context.Context, filter StatementFilter) (*StatementResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = s.pageSize
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.EntryType != nil {
		domainFilter.Filters["entry_type"] = *filter.EntryType
	}
	if filter.Source != nil {
		domainFilter.Filters["source"] = *filter.Source
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}

	statement, err := s.entries.Statement(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	return &StatementResponse{
		Entries:     ToEntryResponses(statement.Entries.Items),
		Total:       statement.Entries.Total,
		Page:        statement.Entries.Page,
		PageSize:    statement.Entries.PageSize,
		TotalPages:  statement.Entries.TotalPages,
		CreditTotal: statement.CreditTotal,
		DebitTotal:  statement.DebitTotal,
	}, nil
}

// Rebuild scans expenses, sale payments and completed payments, and posts
// any ledger entry the synchronization missed. The (source, reference)
// uniqueness guard makes the scan idempotent. With dryRun set it only
// counts what a real run would insert.
func (s *Service) Rebuild(ctx context.Context, dryRun bool) (*RebuildResult, error) {
	result := &RebuildResult{DryRun: dryRun}

	expenses, err := s.expenses.FindAllUnpaged(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to scan expenses: %w", err)
	}
	for _, expense := range expenses {
		if err := s.restore(ctx, result,
			ledger.EntryDebit,
			ledger.SourceExpense,
			expense.LedgerReference(),
			expense.LedgerDescription(),
			valueobject.NewMoneyBDT(expense.Amount),
		); err != nil {
			return nil, err
		}
	}

	salePayments, err := s.sales.FindAllPayments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to scan sale payments: %w", err)
	}
	for _, payment := range salePayments {
		if err := s.restore(ctx, result,
			ledger.EntryCredit,
			ledger.SourceSalePayment,
			payment.ReceiptNumber,
			fmt.Sprintf("Sale payment %s", payment.ReceiptNumber),
			valueobject.NewMoneyBDT(payment.Amount),
		); err != nil {
			return nil, err
		}
	}

	completed, err := s.payments.FindCompleted(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to scan completed payments: %w", err)
	}
	for _, payment := range completed {
		if err := s.restore(ctx, result,
			ledger.EntryCredit,
			ledger.SourceOther,
			payment.InvoiceNumber,
			payment.LedgerDescription(),
			valueobject.NewMoneyBDT(payment.LedgerAmount()),
		); err != nil {
			return nil, err
		}
	}

	s.logger.Info("ledger rebuild finished",
		zap.Bool("dry_run", result.DryRun),
		zap.Int("scanned", result.Scanned),
		zap.Int("inserted", result.Inserted),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}

// restore posts one reconstructed entry, or just counts it in dry-run mode
func (s *Service) restore(ctx context.Context, result *RebuildResult, entryType ledger.EntryType, source ledger.Source, reference, description string, amount valueobject.Money) error {
	result.Scanned++

	if result.DryRun {
		exists, err := s.entries.Exists(ctx, source, reference)
		if err != nil {
			return err
		}
		if exists {
			result.Skipped++
		} else {
			result.Inserted++
		}
		return nil
	}

	entry, err := ledger.NewEntry(entryType, source, reference, description, amount)
	if err != nil {
		s.logger.Warn("skipping source record that cannot form a ledger entry",
			zap.String("source", string(source)),
			zap.String("reference", reference),
			zap.Error(err),
		)
		result.Skipped++
		return nil
	}

	inserted, err := s.entries.Append(ctx, entry)
	if err != nil {
		return err
	}
	if inserted {
		result.Inserted++
	} else {
		result.Skipped++
	}
	return nil
}
