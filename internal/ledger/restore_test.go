package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"crowdfund/internal/domain"
)

func TestRestoreRebuildsEngineState(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	funded := h.createDefault(t)
	h.donate(t, funded, donor1, "0.5")
	h.donate(t, funded, donor2, "1.7")
	if _, err := h.engine.Withdraw(ctx, funded, owner); err != nil {
		t.Fatalf("Withdraw: %v", err)
	}
	if _, err := h.engine.ClaimTokens(ctx, donor1); err != nil {
		t.Fatalf("ClaimTokens: %v", err)
	}

	failed := h.createDefault(t)
	h.donate(t, failed, donor1, "1")
	h.donate(t, failed, donor2, "0.5")
	h.clock.Advance(49 * time.Hour)
	if err := h.engine.CloseProject(ctx, failed); err != nil {
		t.Fatalf("CloseProject: %v", err)
	}
	if _, err := h.engine.Refund(ctx, failed, donor1); err != nil {
		t.Fatalf("Refund: %v", err)
	}

	journal := h.log.Since(0, 0)
	st, err := Restore(journal)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	restored := New(h.payouts, WithState(st), WithSink(NewLog(journal...)), WithClock(h.clock.Now))

	for _, want := range h.engine.Projects() {
		got, err := restored.Project(want.ID)
		if err != nil {
			t.Fatalf("Project(%d): %v", want.ID, err)
		}
		if got != want {
			t.Fatalf("project %d = %+v, want %+v", want.ID, got, want)
		}
	}
	for _, who := range []domain.Principal{donor1, donor2} {
		if got, want := restored.RewardBalance(who), h.engine.RewardBalance(who); got != want {
			t.Fatalf("rewards(%s) = %d, want %d", who, got, want)
		}
		for _, id := range []uint64{funded, failed} {
			got, _ := restored.Contribution(id, who)
			want, _ := h.engine.Contribution(id, who)
			if got != want {
				t.Fatalf("contribution(%d, %s) = %s, want %s", id, who, got, want)
			}
		}
	}

	if _, err := restored.Withdraw(ctx, funded, owner); !errors.Is(err, domain.ErrAlreadyWithdrawn) {
		t.Fatalf("withdraw after restore err = %v, want ErrAlreadyWithdrawn", err)
	}
	if _, err := restored.Refund(ctx, failed, donor2); err != nil {
		t.Fatalf("refund after restore: %v", err)
	}
}

func TestRestoreRejectsCorruptJournal(t *testing.T) {
	create := domain.Notification{Seq: 1, Kind: domain.KindCreate, ProjectID: 0, FundGoal: domain.Coins(1), Principal: owner}
	tests := []struct {
		name  string
		notes []domain.Notification
	}{
		{name: "gap", notes: []domain.Notification{create, {Seq: 3, Kind: domain.KindClosed}}},
		{name: "unknown project", notes: []domain.Notification{{Seq: 1, Kind: domain.KindDonation, ProjectID: 4, Amount: 1}}},
		{name: "overshoot", notes: []domain.Notification{create, {Seq: 2, Kind: domain.KindDonation, Amount: domain.Coins(2), Principal: donor1}}},
		{name: "success below goal", notes: []domain.Notification{create, {Seq: 2, Kind: domain.KindCampaignSuccess}}},
		{name: "claim without rewards", notes: []domain.Notification{{Seq: 1, Kind: domain.KindTokensClaimed, Principal: donor1, Tokens: 5}}},
		{name: "unknown kind", notes: []domain.Notification{create, {Seq: 2, Kind: "Bogus"}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Restore(tc.notes); !errors.Is(err, domain.ErrCorruptJournal) {
				t.Fatalf("err = %v, want ErrCorruptJournal", err)
			}
		})
	}
}
