package domain

import "time"

// NotificationKind names a ledger lifecycle event.
type NotificationKind string

const (
	KindCreate          NotificationKind = "Create"
	KindDonation        NotificationKind = "Donation"
	KindCampaignSuccess NotificationKind = "CampaignSuccess"
	KindWithdraw        NotificationKind = "Withdraw"
	KindRefund          NotificationKind = "Refund"
	KindClosed          NotificationKind = "Closed"
	KindTokensClaimed   NotificationKind = "TokensClaimed"
)

// Valid reports whether k is a known kind.
func (k NotificationKind) Valid() bool {
	switch k {
	case KindCreate, KindDonation, KindCampaignSuccess, KindWithdraw, KindRefund, KindClosed, KindTokensClaimed:
		return true
	}
	return false
}

// Notification is one entry of the append-only ledger event log.
//
// Principal carries the donor for Donation and Refund, the owner for Create,
// CampaignSuccess and Withdraw, and the claimant for TokensClaimed. Amount is
// the accepted donation, the final balance, the withdrawn or refunded amount.
// Tokens is only set on TokensClaimed.
type Notification struct {
	Seq         uint64           `json:"seq"`
	Kind        NotificationKind `json:"kind"`
	ProjectID   uint64           `json:"project_id"`
	Principal   Principal        `json:"principal,omitempty"`
	Amount      Amount           `json:"amount"`
	Tokens      Tokens           `json:"tokens,omitempty"`
	Name        string           `json:"name,omitempty"`
	Description string           `json:"description,omitempty"`
	FundGoal    Amount           `json:"fund_goal,omitempty"`
	EndTime     time.Time        `json:"end_time,omitzero"`
	At          time.Time        `json:"at"`
}
