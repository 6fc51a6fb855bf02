package journal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"crowdfund/internal/domain"
)

// DefaultCommitTimeout bounds a single commit when no timeout is configured.
const DefaultCommitTimeout = 5 * time.Second

// Committer writes each ledger operation to a JournalRepository before the
// engine applies it. Commits run on the caller's goroutine with a deadline,
// so an unreachable database fails the operation instead of stalling the
// ledger.
type Committer struct {
	repo    domain.JournalRepository
	logger  zerolog.Logger
	timeout time.Duration
}

// NewCommitter creates a committer. A non-positive timeout uses
// DefaultCommitTimeout.
func NewCommitter(repo domain.JournalRepository, logger zerolog.Logger, timeout time.Duration) *Committer {
	if timeout <= 0 {
		timeout = DefaultCommitTimeout
	}
	return &Committer{repo: repo, logger: logger, timeout: timeout}
}

// Commit stores notes and payouts in one repository transaction.
func (c *Committer) Commit(ctx context.Context, notes []domain.Notification, payouts []domain.Payout) error {
	if len(notes) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	err := c.repo.Commit(ctx, notes, payouts)
	if err == nil {
		c.logger.Debug().
			Uint64("from_seq", notes[0].Seq).
			Uint64("to_seq", notes[len(notes)-1].Seq).
			Int("payouts", len(payouts)).
			Dur("duration", time.Since(start)).
			Msg("journal: committed")
		return nil
	}

	ev := c.logger.Error().Err(err).
		Uint64("from_seq", notes[0].Seq).
		Int("payouts", len(payouts)).
		Dur("duration", time.Since(start))
	if errors.Is(err, domain.ErrSeqConflict) {
		// the store is ahead of memory; only a restart replays it
		ev.Msg("journal: sequence conflict, restart required to resync")
	} else {
		ev.Msg("journal: commit failed")
	}
	return fmt.Errorf("journal: commit seq %d: %w", notes[0].Seq, err)
}
