package domain

// DonationReceipt describes how a pledge was applied to a project.
type DonationReceipt struct {
	ProjectID uint64    `json:"project_id"`
	Donor     Principal `json:"donor"`
	Offered   Amount    `json:"offered"`
	Accepted  Amount    `json:"accepted"`
	Refunded  Amount    `json:"refunded"`
	Completed bool      `json:"completed"`
}
