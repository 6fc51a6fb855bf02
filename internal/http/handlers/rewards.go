package handlers

import (
	"net/http"
	"time"

	"crowdfund/internal/domain"
)

const recentPayouts = 20

type payoutView struct {
	Kind      domain.PayoutKind `json:"kind"`
	Amount    domain.Amount     `json:"amount"`
	Tokens    domain.Tokens     `json:"tokens"`
	ProjectID *uint64           `json:"project_id,omitempty"`
	Reason    string            `json:"reason"`
	CreatedAt string            `json:"created_at"`
}

// RewardsMe reports the caller's unclaimed tokens and latest payouts.
func (a *App) RewardsMe(w http.ResponseWriter, r *http.Request) {
	me, ok := a.caller(w, r)
	if !ok {
		return
	}
	body := map[string]any{
		"principal": me,
		"balance":   a.Engine.RewardBalance(me),
	}
	if a.Payouts != nil {
		payouts, err := a.Payouts.ListByPrincipal(r.Context(), me, recentPayouts)
		if err != nil {
			a.fail(w, r, err)
			return
		}
		items := make([]payoutView, 0, len(payouts))
		for _, p := range payouts {
			items = append(items, payoutView{
				Kind:      p.Kind,
				Amount:    p.Amount,
				Tokens:    p.Tokens,
				ProjectID: p.ProjectID,
				Reason:    p.Reason,
				CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339),
			})
		}
		body["payouts"] = items
	}
	a.json(w, http.StatusOK, body)
}

func (a *App) RewardsClaim(w http.ResponseWriter, r *http.Request) {
	me, ok := a.caller(w, r)
	if !ok {
		return
	}
	minted, err := a.Engine.ClaimTokens(r.Context(), me)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"principal": me, "minted": minted})
}
