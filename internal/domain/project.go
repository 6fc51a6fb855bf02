package domain

import "time"

// Principal is an externally verified caller identity.
type Principal string

// ProjectStatus is the derived lifecycle state of a project.
type ProjectStatus string

const (
	ProjectStatusActive     ProjectStatus = "active"
	ProjectStatusSuccessful ProjectStatus = "successful"
	ProjectStatusFailed     ProjectStatus = "failed"
)

// Project is a single funding campaign with a goal, deadline and owner.
type Project struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	FundGoal    Amount    `json:"fund_goal"`
	Balance     Amount    `json:"balance"`
	EndTime     time.Time `json:"end_time"`
	Owner       Principal `json:"owner"`
	IsEnded     bool      `json:"is_ended"`
	IsSuccess   bool      `json:"is_success"`
	Withdrawn   bool      `json:"withdrawn"`
	CreatedAt   time.Time `json:"created_at"`
}

// Status reports the lifecycle state derived from the ended/success flags.
func (p Project) Status() ProjectStatus {
	switch {
	case p.IsSuccess:
		return ProjectStatusSuccessful
	case p.IsEnded:
		return ProjectStatusFailed
	default:
		return ProjectStatusActive
	}
}

// Room returns how much can still be pledged before the goal is reached.
func (p Project) Room() Amount {
	if p.Balance >= p.FundGoal {
		return 0
	}
	return p.FundGoal - p.Balance
}
