package ledger

import (
	"context"

	"github.com/orgms/backend/internal/domain/ledger"
	"github.com/orgms/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// Sync posts ledger entries for qualifying business events. Recording is
// best-effort: a failure is logged and swallowed so it never breaks the
// business operation that triggered it, and the (source, reference)
// uniqueness guard makes repeated invocations for the same event no-ops.
type Sync struct {
	entries ledger.EntryRepository
	logger  *zap.Logger
}

// NewSync creates a new ledger synchronization policy
func NewSync(entries ledger.EntryRepository, logger *zap.Logger) *Sync {
	return &Sync{entries: entries, logger: logger}
}

// Record posts one entry for a business event. Returns true when a new
// entry was written, false when it already existed or could not be written.
func (s *Sync) Record(ctx context.Context, entryType ledger.EntryType, source ledger.Source, reference, description string, amount valueobject.Money) bool {
	entry, err := ledger.NewEntry(entryType, source, reference, description, amount)
	if err != nil {
		s.logger.Error("refusing to record invalid ledger entry",
			zap.String("source", string(source)),
			zap.String("reference", reference),
			zap.Error(err),
		)
		return false
	}

	inserted, err := s.entries.Append(ctx, entry)
	if err != nil {
		s.logger.Error("failed to record ledger entry",
			zap.String("source", string(source)),
			zap.String("reference", reference),
			zap.Error(err),
		)
		return false
	}

	if !inserted {
		s.logger.Debug("ledger entry already recorded",
			zap.String("source", string(source)),
			zap.String("reference", reference),
		)
		return false
	}

	s.logger.Info("ledger entry recorded",
		zap.String("entry_type", string(entryType)),
		zap.String("source", string(source)),
		zap.String("reference", reference),
		zap.String("amount", amount.String()),
	)
	return true
}
