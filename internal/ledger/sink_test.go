package ledger

import (
	"testing"

	"crowdfund/internal/domain"
)

func TestLogAssignsSequenceAndNotifiesSubscribers(t *testing.T) {
	l := NewLog()
	var seen []uint64
	l.Subscribe(func(n domain.Notification) { seen = append(seen, n.Seq) })

	for i := 0; i < 3; i++ {
		l.Emit(domain.Notification{Kind: domain.KindDonation})
	}
	if l.LastSeq() != 3 {
		t.Fatalf("LastSeq = %d, want 3", l.LastSeq())
	}
	if len(seen) != 3 || seen[0] != 1 || seen[2] != 3 {
		t.Fatalf("subscriber saw %v, want [1 2 3]", seen)
	}
}

func TestLogKeepsPresetSequence(t *testing.T) {
	l := NewLog(domain.Notification{Seq: 1, Kind: domain.KindCreate})
	l.Emit(domain.Notification{Seq: 2, Kind: domain.KindDonation})
	l.Emit(domain.Notification{Kind: domain.KindClosed})
	got := l.Since(0, 0)
	if len(got) != 3 || got[1].Seq != 2 || got[2].Seq != 3 {
		t.Fatalf("entries = %+v", got)
	}
}

func TestLogSince(t *testing.T) {
	history := []domain.Notification{
		{Seq: 1, Kind: domain.KindCreate},
		{Seq: 2, Kind: domain.KindDonation},
	}
	l := NewLog(history...)
	l.Emit(domain.Notification{Kind: domain.KindDonation})
	l.Emit(domain.Notification{Kind: domain.KindCampaignSuccess})

	tests := []struct {
		name      string
		after     uint64
		limit     int
		wantFirst uint64
		wantLen   int
	}{
		{name: "all", after: 0, limit: 0, wantFirst: 1, wantLen: 4},
		{name: "after two", after: 2, limit: 0, wantFirst: 3, wantLen: 2},
		{name: "limited", after: 1, limit: 2, wantFirst: 2, wantLen: 2},
		{name: "caught up", after: 4, limit: 10, wantLen: 0},
		{name: "beyond", after: 40, limit: 0, wantLen: 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := l.Since(tc.after, tc.limit)
			if len(got) != tc.wantLen {
				t.Fatalf("len = %d, want %d", len(got), tc.wantLen)
			}
			if tc.wantLen > 0 && got[0].Seq != tc.wantFirst {
				t.Fatalf("first seq = %d, want %d", got[0].Seq, tc.wantFirst)
			}
		})
	}
}
