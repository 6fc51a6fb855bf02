package ledger

import "crowdfund/internal/domain"

// RewardLedger tracks each principal's accrued, unclaimed reward tokens.
type RewardLedger struct {
	balances map[domain.Principal]domain.Tokens
}

// NewRewardLedger returns an empty reward ledger.
func NewRewardLedger() *RewardLedger {
	return &RewardLedger{balances: make(map[domain.Principal]domain.Tokens)}
}

// Balance returns the unclaimed tokens for p.
func (r *RewardLedger) Balance(p domain.Principal) domain.Tokens {
	return r.balances[p]
}

func (r *RewardLedger) credit(p domain.Principal, t domain.Tokens) {
	if t == 0 {
		return
	}
	r.balances[p] += t
}

func (r *RewardLedger) reset(p domain.Principal) {
	delete(r.balances, p)
}
