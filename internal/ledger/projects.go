package ledger

import (
	"time"

	"crowdfund/internal/domain"
)

// MaxDurationDays bounds the campaign length accepted at creation.
const MaxDurationDays = 36500

// ProjectStore is the append-only table of projects keyed by sequential id.
type ProjectStore struct {
	projects []*domain.Project
}

// NewProjectStore returns an empty store.
func NewProjectStore() *ProjectStore {
	return &ProjectStore{}
}

// Len returns the number of projects ever created.
func (s *ProjectStore) Len() int {
	return len(s.projects)
}

// Get returns a copy of the project with the given id.
func (s *ProjectStore) Get(id uint64) (domain.Project, error) {
	p, err := s.lookup(id)
	if err != nil {
		return domain.Project{}, err
	}
	return *p, nil
}

// List returns copies of all projects in id order.
func (s *ProjectStore) List() []domain.Project {
	out := make([]domain.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, *p)
	}
	return out
}

func (s *ProjectStore) lookup(id uint64) (*domain.Project, error) {
	if id >= uint64(len(s.projects)) {
		return nil, domain.ErrNotFound
	}
	return s.projects[id], nil
}

// draft validates a new project and assigns it the next id without storing it.
func (s *ProjectStore) draft(owner domain.Principal, name, description string, goal domain.Amount, days uint32, now time.Time) (*domain.Project, error) {
	if goal == 0 {
		return nil, domain.ErrInvalidGoal
	}
	if days == 0 || days > MaxDurationDays {
		return nil, domain.ErrInvalidDuration
	}
	p := &domain.Project{
		ID:          uint64(len(s.projects)),
		Name:        name,
		Description: description,
		FundGoal:    goal,
		EndTime:     now.Add(time.Duration(days) * 24 * time.Hour),
		Owner:       owner,
		CreatedAt:   now,
	}
	return p, nil
}

func (s *ProjectStore) insert(p *domain.Project) {
	s.projects = append(s.projects, p)
}
