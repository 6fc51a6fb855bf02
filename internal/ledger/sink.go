package ledger

import (
	"sync"

	"crowdfund/internal/domain"
)

// Sink receives ledger notifications in the order they occur.
type Sink interface {
	Emit(n domain.Notification)
}

// Log is an in-memory append-only notification log. It assigns sequence
// numbers starting at 1 and fans every appended entry out to subscribers.
type Log struct {
	mu          sync.RWMutex
	entries     []domain.Notification
	next        uint64
	subscribers []func(domain.Notification)
}

// NewLog returns a log pre-loaded with history, which must already carry
// contiguous sequence numbers starting at 1.
func NewLog(history ...domain.Notification) *Log {
	l := &Log{next: 1}
	if len(history) > 0 {
		l.entries = append(l.entries, history...)
		l.next = history[len(history)-1].Seq + 1
	}
	return l
}

// Subscribe registers fn to be called after each append. Subscribers run
// synchronously on the emitting goroutine and must not block.
func (l *Log) Subscribe(fn func(domain.Notification)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.subscribers = append(l.subscribers, fn)
}

// Emit appends n. A zero Seq is assigned the next sequence number; a preset
// one, as numbered by the engine before its journal commit, is kept.
func (l *Log) Emit(n domain.Notification) {
	l.mu.Lock()
	if n.Seq == 0 {
		n.Seq = l.next
	}
	l.next = n.Seq + 1
	l.entries = append(l.entries, n)
	subs := l.subscribers
	l.mu.Unlock()

	for _, fn := range subs {
		fn(n)
	}
}

// LastSeq returns the sequence number of the newest entry, or 0.
func (l *Log) LastSeq() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.next - 1
}

// Since returns up to limit entries with Seq greater than afterSeq. A
// non-positive limit returns everything.
func (l *Log) Since(afterSeq uint64, limit int) []domain.Notification {
	l.mu.RLock()
	defer l.mu.RUnlock()

	// entries are dense from entries[0].Seq onward
	if len(l.entries) == 0 {
		return nil
	}
	first := l.entries[0].Seq
	start := 0
	if afterSeq >= first {
		start = int(afterSeq - first + 1)
	}
	if start >= len(l.entries) {
		return nil
	}
	end := len(l.entries)
	if limit > 0 && start+limit < end {
		end = start + limit
	}
	out := make([]domain.Notification, end-start)
	copy(out, l.entries[start:end])
	return out
}
