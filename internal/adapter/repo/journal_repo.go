package repo

import (
	"context"
	"fmt"
	"time"

	"crowdfund/internal/domain"
	"crowdfund/internal/infra"
	"crowdfund/internal/sqlinline"
)

// JournalRepositoryPG implements domain.JournalRepository on PostgreSQL.
// Payouts are written to ledger_payouts in the same transaction as the
// journal rows of the operation that made them.
type JournalRepositoryPG struct {
	db infra.TxExecutor
}

// NewJournalRepository creates a postgres journal repo.
func NewJournalRepository(db infra.TxExecutor) *JournalRepositoryPG {
	return &JournalRepositoryPG{db: db}
}

// EnsureSchema creates the journal and payout tables when missing.
func (r *JournalRepositoryPG) EnsureSchema(ctx context.Context) error {
	for _, q := range []string{sqlinline.QEnsureJournal, sqlinline.QEnsurePayouts, sqlinline.QEnsurePayoutsIndex} {
		if _, err := r.db.Exec(ctx, q); err != nil {
			return fmt.Errorf("ensure journal schema: %w", err)
		}
	}
	return nil
}

// Commit stores notes and payouts in one transaction after checking that
// notes continue the stored sequence.
func (r *JournalRepositoryPG) Commit(ctx context.Context, notes []domain.Notification, payouts []domain.Payout) error {
	if len(notes) == 0 {
		return nil
	}
	return r.db.InTx(ctx, func(tx infra.SQLExecutor) error {
		var head int64
		if err := tx.QueryRow(ctx, sqlinline.QJournalHead).Scan(&head); err != nil {
			return fmt.Errorf("read journal head: %w", err)
		}
		if err := checkNext(uint64(head), notes); err != nil {
			return err
		}
		for _, n := range notes {
			if err := insertNote(ctx, tx, n); err != nil {
				return err
			}
		}
		for _, p := range payouts {
			if err := insertPayout(ctx, tx, p); err != nil {
				return err
			}
		}
		return nil
	})
}

func insertNote(ctx context.Context, db infra.SQLExecutor, n domain.Notification) error {
	_, err := db.Exec(ctx, sqlinline.QInsertJournal,
		int64(n.Seq),
		string(n.Kind),
		int64(n.ProjectID),
		string(n.Principal),
		formatUnits(uint64(n.Amount)),
		formatUnits(uint64(n.Tokens)),
		n.Name,
		n.Description,
		formatUnits(uint64(n.FundGoal)),
		optionalTime(n.EndTime),
		n.At.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert journal seq %d: %w", n.Seq, err)
	}
	return nil
}

// List returns up to limit notes with seq greater than afterSeq.
func (r *JournalRepositoryPG) List(ctx context.Context, afterSeq uint64, limit int) ([]domain.Notification, error) {
	rows, err := r.db.Query(ctx, sqlinline.QListJournalAfter, int64(afterSeq), normalizeLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Notification
	for rows.Next() {
		var (
			n                        domain.Notification
			seq, projectID           int64
			kind, principal          string
			amount, tokens, fundGoal string
			endTime                  *time.Time
		)
		if err := rows.Scan(&seq, &kind, &projectID, &principal, &amount, &tokens, &n.Name, &n.Description, &fundGoal, &endTime, &n.At); err != nil {
			return nil, err
		}
		n.Seq = uint64(seq)
		n.Kind = domain.NotificationKind(kind)
		n.ProjectID = uint64(projectID)
		n.Principal = domain.Principal(principal)
		if err := decodeNotificationUnits(&n, amount, tokens, fundGoal); err != nil {
			return nil, err
		}
		if endTime != nil {
			n.EndTime = endTime.UTC()
		}
		n.At = n.At.UTC()
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func decodeNotificationUnits(n *domain.Notification, amount, tokens, fundGoal string) error {
	a, err := parseUnits("amount", amount)
	if err != nil {
		return err
	}
	t, err := parseUnits("tokens", tokens)
	if err != nil {
		return err
	}
	g, err := parseUnits("fund_goal", fundGoal)
	if err != nil {
		return err
	}
	n.Amount = domain.Amount(a)
	n.Tokens = domain.Tokens(t)
	n.FundGoal = domain.Amount(g)
	return nil
}

var _ domain.JournalRepository = (*JournalRepositoryPG)(nil)
