package journal

import (
	"context"
	"fmt"

	"crowdfund/internal/domain"
	"crowdfund/internal/ledger"
)

const loadPage = 500

// Load reads the whole journal in sequence order.
func Load(ctx context.Context, repo domain.JournalRepository) ([]domain.Notification, error) {
	var (
		all   []domain.Notification
		after uint64
	)
	for {
		page, err := repo.List(ctx, after, loadPage)
		if err != nil {
			return nil, fmt.Errorf("journal: list after %d: %w", after, err)
		}
		all = append(all, page...)
		if len(page) < loadPage {
			return all, nil
		}
		after = page[len(page)-1].Seq
	}
}

// Recover loads the journal and replays it into ledger tables. It returns
// the restored state with the notifications it was built from, ready to seed
// a ledger.Log.
func Recover(ctx context.Context, repo domain.JournalRepository) (*ledger.State, []domain.Notification, error) {
	history, err := Load(ctx, repo)
	if err != nil {
		return nil, nil, err
	}
	state, err := ledger.Restore(history)
	if err != nil {
		return nil, nil, fmt.Errorf("journal: restore: %w", err)
	}
	return state, history, nil
}
