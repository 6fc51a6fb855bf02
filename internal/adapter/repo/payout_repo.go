package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"crowdfund/internal/domain"
	"crowdfund/internal/infra"
	"crowdfund/internal/sqlinline"
)

// PayoutRepositoryPG implements domain.PayoutRepository on PostgreSQL. Rows
// are written by JournalRepositoryPG.Commit.
type PayoutRepositoryPG struct {
	db infra.SQLExecutor
}

// NewPayoutRepository creates a postgres payout repo.
func NewPayoutRepository(db infra.SQLExecutor) *PayoutRepositoryPG {
	return &PayoutRepositoryPG{db: db}
}

func insertPayout(ctx context.Context, db infra.SQLExecutor, p domain.Payout) error {
	_, err := db.Exec(ctx, sqlinline.QInsertPayout,
		uuid.New(),
		string(p.Kind),
		string(p.To),
		formatUnits(uint64(p.Amount)),
		formatUnits(uint64(p.Tokens)),
		projectIDArg(p.ProjectID),
		p.Reason,
		p.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert payout to %s: %w", p.To, err)
	}
	return nil
}

// ListByPrincipal returns the latest payouts to a principal, newest first.
func (r *PayoutRepositoryPG) ListByPrincipal(ctx context.Context, to domain.Principal, limit int) ([]domain.Payout, error) {
	rows, err := r.db.Query(ctx, sqlinline.QListPayoutsByRecipient, string(to), normalizeLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Payout
	for rows.Next() {
		var (
			kind, recipient, amount, tokens string
			projectID                       *int64
			reason                          string
			createdAt                       time.Time
		)
		if err := rows.Scan(&kind, &recipient, &amount, &tokens, &projectID, &reason, &createdAt); err != nil {
			return nil, err
		}
		p, err := decodePayout(kind, recipient, amount, tokens, projectID, reason, createdAt)
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

func projectIDArg(id *uint64) *int64 {
	if id == nil {
		return nil
	}
	v := int64(*id)
	return &v
}

func decodePayout(kind, recipient, amount, tokens string, projectID *int64, reason string, createdAt time.Time) (domain.Payout, error) {
	a, err := parseUnits("amount", amount)
	if err != nil {
		return domain.Payout{}, err
	}
	t, err := parseUnits("tokens", tokens)
	if err != nil {
		return domain.Payout{}, err
	}
	p := domain.Payout{
		Kind:      domain.PayoutKind(kind),
		To:        domain.Principal(recipient),
		Amount:    domain.Amount(a),
		Tokens:    domain.Tokens(t),
		Reason:    reason,
		CreatedAt: createdAt.UTC(),
	}
	if projectID != nil {
		id := uint64(*projectID)
		p.ProjectID = &id
	}
	return p, nil
}

var _ domain.PayoutRepository = (*PayoutRepositoryPG)(nil)
