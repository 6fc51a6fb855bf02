package main

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"crowdfund/internal/domain"
	"crowdfund/internal/ledger"
)

func TestWriteSummary(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	history := []domain.Notification{
		{Seq: 1, Kind: domain.KindCreate, ProjectID: 0, Principal: "owner", Name: "Well", FundGoal: domain.Coins(2), EndTime: at.Add(48 * time.Hour), At: at},
		{Seq: 2, Kind: domain.KindDonation, ProjectID: 0, Principal: "a", Amount: domain.Coins(1), At: at},
		{Seq: 3, Kind: domain.KindDonation, ProjectID: 0, Principal: "b", Amount: domain.Coins(1) / 2, At: at},
	}
	state, err := ledger.Restore(history)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}

	var buf bytes.Buffer
	if err := writeSummary(&buf, state, history); err != nil {
		t.Fatalf("writeSummary: %v", err)
	}
	var got struct {
		Notifications int    `json:"notifications"`
		LastSeq       uint64 `json:"last_seq"`
		Projects      []struct {
			Name          string `json:"name"`
			Status        string `json:"status"`
			Donors        int    `json:"donors"`
			Contributions string `json:"contributions"`
			Balance       string `json:"balance"`
		} `json:"projects"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if got.Notifications != 3 || got.LastSeq != 3 || len(got.Projects) != 1 {
		t.Fatalf("unexpected summary: %+v", got)
	}
	p := got.Projects[0]
	if p.Name != "Well" || p.Status != "active" || p.Donors != 2 || p.Contributions != "1.5" || p.Balance != "1.5" {
		t.Fatalf("unexpected project summary: %+v", p)
	}
}

func TestWriteSummaryEmptyJournal(t *testing.T) {
	var buf bytes.Buffer
	if err := writeSummary(&buf, ledger.NewState(), nil); err != nil {
		t.Fatalf("writeSummary: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"projects": []`)) {
		t.Fatalf("expected empty project list, got %s", buf.String())
	}
}
