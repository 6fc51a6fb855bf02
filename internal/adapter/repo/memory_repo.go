package repo

import (
	"context"
	"sync"

	"crowdfund/internal/domain"
)

// MemoryStore keeps the journal and its payouts in process memory. It
// implements both repository contracts so a commit updates them together.
type MemoryStore struct {
	mu      sync.RWMutex
	notes   []domain.Notification
	payouts []domain.Payout
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Commit appends notes and payouts after checking that notes continue the
// stored sequence.
func (m *MemoryStore) Commit(_ context.Context, notes []domain.Notification, payouts []domain.Payout) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var head uint64
	if len(m.notes) > 0 {
		head = m.notes[len(m.notes)-1].Seq
	}
	if err := checkNext(head, notes); err != nil {
		return err
	}
	m.notes = append(m.notes, notes...)
	m.payouts = append(m.payouts, payouts...)
	return nil
}

// List returns up to limit notes with seq greater than afterSeq.
func (m *MemoryStore) List(_ context.Context, afterSeq uint64, limit int) ([]domain.Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	limit = normalizeLimit(limit)
	var out []domain.Notification
	for _, n := range m.notes {
		if n.Seq <= afterSeq {
			continue
		}
		out = append(out, n)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// ListByPrincipal returns the latest payouts to a principal, newest first.
func (m *MemoryStore) ListByPrincipal(_ context.Context, to domain.Principal, limit int) ([]domain.Payout, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	limit = normalizeLimit(limit)
	var out []domain.Payout
	for i := len(m.payouts) - 1; i >= 0 && len(out) < limit; i-- {
		if m.payouts[i].To == to {
			out = append(out, m.payouts[i])
		}
	}
	return out, nil
}

var (
	_ domain.JournalRepository = (*MemoryStore)(nil)
	_ domain.PayoutRepository  = (*MemoryStore)(nil)
)
