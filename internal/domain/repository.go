package domain

import "context"

// JournalRepository persists ledger notifications in sequence order.
//
// Commit stores one operation's notifications together with the payouts it
// made, all or nothing. The first note must directly follow the last stored
// seq; otherwise it returns ErrSeqConflict and writes nothing.
type JournalRepository interface {
	Commit(ctx context.Context, notes []Notification, payouts []Payout) error
	List(ctx context.Context, afterSeq uint64, limit int) ([]Notification, error)
}

// PayoutRepository reads back the payouts recorded by journal commits.
type PayoutRepository interface {
	ListByPrincipal(ctx context.Context, to Principal, limit int) ([]Payout, error)
}
