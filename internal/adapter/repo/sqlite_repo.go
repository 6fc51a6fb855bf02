package repo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"crowdfund/internal/domain"
	"crowdfund/internal/sqlinline"
)

// JournalRepositorySQLite implements domain.JournalRepository on an
// embedded SQLite database. Commit writes payouts to the payout table of the
// same database.
type JournalRepositorySQLite struct {
	db *sql.DB
}

// NewJournalRepositorySQLite creates the journal and payout tables when
// missing.
func NewJournalRepositorySQLite(ctx context.Context, db *sql.DB) (*JournalRepositorySQLite, error) {
	for _, q := range []string{sqlinline.QSQLiteEnsureJournal, sqlinline.QSQLiteEnsurePayouts, sqlinline.QSQLiteEnsurePayoutsIndex} {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return nil, fmt.Errorf("ensure journal schema: %w", err)
		}
	}
	return &JournalRepositorySQLite{db: db}, nil
}

// Commit stores notes and payouts in one transaction after checking that
// notes continue the stored sequence.
func (r *JournalRepositorySQLite) Commit(ctx context.Context, notes []domain.Notification, payouts []domain.Payout) error {
	if len(notes) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin journal tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var head int64
	if err := tx.QueryRowContext(ctx, sqlinline.QSQLiteJournalHead).Scan(&head); err != nil {
		return fmt.Errorf("read journal head: %w", err)
	}
	if err := checkNext(uint64(head), notes); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, sqlinline.QSQLiteInsertJournal)
	if err != nil {
		return fmt.Errorf("prepare journal insert: %w", err)
	}
	defer stmt.Close()

	for _, n := range notes {
		var endTime any
		if !n.EndTime.IsZero() {
			endTime = toMillis(n.EndTime)
		}
		_, err := stmt.ExecContext(ctx,
			int64(n.Seq),
			string(n.Kind),
			int64(n.ProjectID),
			string(n.Principal),
			formatUnits(uint64(n.Amount)),
			formatUnits(uint64(n.Tokens)),
			n.Name,
			n.Description,
			formatUnits(uint64(n.FundGoal)),
			endTime,
			toMillis(n.At),
		)
		if err != nil {
			return fmt.Errorf("insert journal seq %d: %w", n.Seq, err)
		}
	}
	for _, p := range payouts {
		var projectID any
		if p.ProjectID != nil {
			projectID = int64(*p.ProjectID)
		}
		_, err := tx.ExecContext(ctx, sqlinline.QSQLiteInsertPayout,
			uuid.NewString(),
			string(p.Kind),
			string(p.To),
			formatUnits(uint64(p.Amount)),
			formatUnits(uint64(p.Tokens)),
			projectID,
			p.Reason,
			toMillis(p.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("insert payout to %s: %w", p.To, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit journal tx: %w", err)
	}
	return nil
}

// List returns up to limit notes with seq greater than afterSeq.
func (r *JournalRepositorySQLite) List(ctx context.Context, afterSeq uint64, limit int) ([]domain.Notification, error) {
	rows, err := r.db.QueryContext(ctx, sqlinline.QSQLiteListJournalAfter, int64(afterSeq), normalizeLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Notification
	for rows.Next() {
		var (
			n                        domain.Notification
			seq, projectID, atMS     int64
			kind, principal          string
			amount, tokens, fundGoal string
			endTimeMS                sql.NullInt64
		)
		if err := rows.Scan(&seq, &kind, &projectID, &principal, &amount, &tokens, &n.Name, &n.Description, &fundGoal, &endTimeMS, &atMS); err != nil {
			return nil, err
		}
		n.Seq = uint64(seq)
		n.Kind = domain.NotificationKind(kind)
		n.ProjectID = uint64(projectID)
		n.Principal = domain.Principal(principal)
		if err := decodeNotificationUnits(&n, amount, tokens, fundGoal); err != nil {
			return nil, err
		}
		if endTimeMS.Valid {
			n.EndTime = fromMillis(endTimeMS.Int64)
		}
		n.At = fromMillis(atMS)
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// PayoutRepositorySQLite implements domain.PayoutRepository on SQLite. Rows
// are written by JournalRepositorySQLite.Commit.
type PayoutRepositorySQLite struct {
	db *sql.DB
}

// NewPayoutRepositorySQLite returns a reader over the payout table.
func NewPayoutRepositorySQLite(db *sql.DB) *PayoutRepositorySQLite {
	return &PayoutRepositorySQLite{db: db}
}

// ListByPrincipal returns the latest payouts to a principal, newest first.
func (r *PayoutRepositorySQLite) ListByPrincipal(ctx context.Context, to domain.Principal, limit int) ([]domain.Payout, error) {
	rows, err := r.db.QueryContext(ctx, sqlinline.QSQLiteListPayoutsByRecipient, string(to), normalizeLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Payout
	for rows.Next() {
		var (
			kind, recipient, amount, tokens, reason string
			projectID                               sql.NullInt64
			createdAtMS                             int64
		)
		if err := rows.Scan(&kind, &recipient, &amount, &tokens, &projectID, &reason, &createdAtMS); err != nil {
			return nil, err
		}
		var pid *int64
		if projectID.Valid {
			pid = &projectID.Int64
		}
		p, err := decodePayout(kind, recipient, amount, tokens, pid, reason, fromMillis(createdAtMS))
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

var (
	_ domain.JournalRepository = (*JournalRepositorySQLite)(nil)
	_ domain.PayoutRepository  = (*PayoutRepositorySQLite)(nil)
)
