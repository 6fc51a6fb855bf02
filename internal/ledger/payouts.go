package ledger

import (
	"context"

	"crowdfund/internal/domain"
)

// Payouts moves value out of the ledger: native currency transfers to
// owners and donors, and reward-token mints to claimants.
type Payouts interface {
	Pay(ctx context.Context, p domain.Payout) error
}

// PayoutsFunc adapts a function to the Payouts interface.
type PayoutsFunc func(ctx context.Context, p domain.Payout) error

// Pay calls f.
func (f PayoutsFunc) Pay(ctx context.Context, p domain.Payout) error {
	return f(ctx, p)
}

// Journal stores one operation durably before the engine applies it. The
// notifications and the payouts of an operation are committed together or
// not at all, and Commit must return once ctx is done.
type Journal interface {
	Commit(ctx context.Context, notes []domain.Notification, payouts []domain.Payout) error
}

// JournalFunc adapts a function to the Journal interface.
type JournalFunc func(ctx context.Context, notes []domain.Notification, payouts []domain.Payout) error

// Commit calls f.
func (f JournalFunc) Commit(ctx context.Context, notes []domain.Notification, payouts []domain.Payout) error {
	return f(ctx, notes, payouts)
}
