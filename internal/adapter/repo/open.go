package repo

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"crowdfund/internal/domain"
	"crowdfund/internal/infra"
)

// Stores is the journal and payout storage selected by JOURNAL_DRIVER. Both
// views share one database, so journal commits are visible to Payouts.
type Stores struct {
	Journal domain.JournalRepository
	Payouts domain.PayoutRepository
	close   func()
}

// Close releases the underlying connections.
func (s *Stores) Close() {
	if s != nil && s.close != nil {
		s.close()
	}
}

// Open connects the configured driver and ensures its schema exists.
func Open(ctx context.Context, cfg *infra.Config, logger zerolog.Logger) (*Stores, error) {
	switch cfg.JournalDriver {
	case infra.JournalPostgres:
		pool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		runner := infra.NewSQLRunner(pool, logger)
		journalRepo := NewJournalRepository(runner)
		if err := journalRepo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return &Stores{Journal: journalRepo, Payouts: NewPayoutRepository(runner), close: pool.Close}, nil

	case infra.JournalSQLite:
		db, err := infra.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		journalRepo, err := NewJournalRepositorySQLite(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		return &Stores{Journal: journalRepo, Payouts: NewPayoutRepositorySQLite(db), close: func() { _ = db.Close() }}, nil

	case infra.JournalMemory, "":
		store := NewMemoryStore()
		return &Stores{Journal: store, Payouts: store}, nil
	}
	return nil, fmt.Errorf("unknown journal driver %q", cfg.JournalDriver)
}
