package ledger

import "crowdfund/internal/domain"

type contributionKey struct {
	project uint64
	donor   domain.Principal
}

// ContributionTable holds per-(project, donor) net pledges and the ordered
// list of distinct donors for each project.
type ContributionTable struct {
	amounts map[contributionKey]domain.Amount
	donors  map[uint64][]domain.Principal
}

// NewContributionTable returns an empty table.
func NewContributionTable() *ContributionTable {
	return &ContributionTable{
		amounts: make(map[contributionKey]domain.Amount),
		donors:  make(map[uint64][]domain.Principal),
	}
}

// Get returns the donor's net contribution to the project.
func (c *ContributionTable) Get(projectID uint64, donor domain.Principal) domain.Amount {
	return c.amounts[contributionKey{projectID, donor}]
}

// Donors returns a copy of the project's donors in first-contribution order.
func (c *ContributionTable) Donors(projectID uint64) []domain.Principal {
	list := c.donors[projectID]
	out := make([]domain.Principal, len(list))
	copy(out, list)
	return out
}

// Total sums all contributions to a project.
func (c *ContributionTable) Total(projectID uint64) domain.Amount {
	var sum domain.Amount
	for _, d := range c.donors[projectID] {
		sum += c.amounts[contributionKey{projectID, d}]
	}
	return sum
}

func (c *ContributionTable) add(projectID uint64, donor domain.Principal, amount domain.Amount) {
	if amount == 0 {
		return
	}
	key := contributionKey{projectID, donor}
	if _, seen := c.amounts[key]; !seen {
		c.donors[projectID] = append(c.donors[projectID], donor)
	}
	c.amounts[key] += amount
}

// zero clears the donor's contribution but keeps the donor listed.
func (c *ContributionTable) zero(projectID uint64, donor domain.Principal) {
	key := contributionKey{projectID, donor}
	if _, ok := c.amounts[key]; ok {
		c.amounts[key] = 0
	}
}
