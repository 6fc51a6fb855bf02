package domain

import "time"

// PayoutKind distinguishes native currency transfers from reward mints.
type PayoutKind string

const (
	PayoutTransfer PayoutKind = "transfer"
	PayoutMint     PayoutKind = "mint"
)

// Payout records value leaving the ledger.
type Payout struct {
	Kind      PayoutKind
	To        Principal
	Amount    Amount
	Tokens    Tokens
	ProjectID *uint64
	Reason    string
	CreatedAt time.Time
}
