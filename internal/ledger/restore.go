package ledger

import (
	"fmt"

	"crowdfund/internal/domain"
)

// Restore rebuilds ledger tables by replaying a journal. Entries must be in
// sequence order starting at 1 with no gaps.
func Restore(notes []domain.Notification) (*State, error) {
	st := NewState()
	for i, n := range notes {
		if want := uint64(i) + 1; n.Seq != want {
			return nil, fmt.Errorf("%w: seq %d, want %d", domain.ErrCorruptJournal, n.Seq, want)
		}
		if err := replay(st, n); err != nil {
			return nil, fmt.Errorf("%w: seq %d (%s): %v", domain.ErrCorruptJournal, n.Seq, n.Kind, err)
		}
		st.LastSeq = n.Seq
	}
	return st, nil
}

func replay(st *State, n domain.Notification) error {
	if n.Kind == domain.KindTokensClaimed {
		if have := st.Rewards.Balance(n.Principal); have != n.Tokens {
			return fmt.Errorf("claim of %d tokens, ledger holds %d", n.Tokens, have)
		}
		st.Rewards.reset(n.Principal)
		return nil
	}
	if n.Kind == domain.KindCreate {
		if n.ProjectID != uint64(st.Projects.Len()) {
			return fmt.Errorf("project id %d out of order", n.ProjectID)
		}
		st.Projects.projects = append(st.Projects.projects, &domain.Project{
			ID:          n.ProjectID,
			Name:        n.Name,
			Description: n.Description,
			FundGoal:    n.FundGoal,
			EndTime:     n.EndTime,
			Owner:       n.Principal,
			CreatedAt:   n.At,
		})
		return nil
	}

	p, err := st.Projects.lookup(n.ProjectID)
	if err != nil {
		return err
	}
	switch n.Kind {
	case domain.KindDonation:
		if p.IsEnded || n.Amount > p.Room() {
			return fmt.Errorf("donation of %s does not fit", n.Amount)
		}
		p.Balance += n.Amount
		st.Contributions.add(p.ID, n.Principal, n.Amount)
	case domain.KindCampaignSuccess:
		if p.Balance != p.FundGoal {
			return fmt.Errorf("success with balance %s below goal %s", p.Balance, p.FundGoal)
		}
		p.IsEnded = true
		p.IsSuccess = true
	case domain.KindClosed:
		p.IsEnded = true
	case domain.KindWithdraw:
		if !p.IsSuccess || p.Withdrawn {
			return fmt.Errorf("withdraw from project in state %s", p.Status())
		}
		p.Withdrawn = true
		accrueRewards(st, p.ID)
	case domain.KindRefund:
		if have := st.Contributions.Get(p.ID, n.Principal); have != n.Amount {
			return fmt.Errorf("refund of %s, contribution is %s", n.Amount, have)
		}
		st.Contributions.zero(p.ID, n.Principal)
		p.Balance -= n.Amount
	default:
		return fmt.Errorf("unknown kind %q", n.Kind)
	}
	return nil
}
