// Package memstore keeps projects and donations in process memory. It backs
// the service when STORAGE_DRIVER=memory and doubles as the fake ledger in tests.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"charityfund/internal/domain"
)

// Store is a mutex-guarded in-memory implementation of domain.Store.
type Store struct {
	mu        sync.RWMutex
	now       func() time.Time
	nextID    int64
	projects  map[int64]domain.CharityProject
	donations map[int64]domain.Donation
}

// New creates an empty store. now stamps create dates; nil means time.Now.
func New(now func() time.Time) *Store {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Store{
		now:       now,
		projects:  make(map[int64]domain.CharityProject),
		donations: make(map[int64]domain.Donation),
	}
}

func (s *Store) CreateProject(_ context.Context, project *domain.CharityProject) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.nameTaken(project.Name, 0) {
		return domain.ErrDuplicateName
	}
	s.nextID++
	project.ID = s.nextID
	project.InvestedAmount = 0
	project.FullyInvested = false
	project.CloseDate = nil
	if project.CreateDate.IsZero() {
		project.CreateDate = s.now()
	}
	s.projects[project.ID] = cloneProject(*project)
	return nil
}

func (s *Store) GetProject(_ context.Context, id int64) (*domain.CharityProject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p = cloneProject(p)
	return &p, nil
}

func (s *Store) GetProjectIDByName(_ context.Context, name string) (int64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id, p := range s.projects {
		if p.Name == name {
			return id, true, nil
		}
	}
	return 0, false, nil
}

func (s *Store) ListProjects(_ context.Context) ([]domain.CharityProject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedProjects(func(domain.CharityProject) bool { return true }), nil
}

func (s *Store) UpdateProject(_ context.Context, project *domain.CharityProject) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[project.ID]; !ok {
		return domain.ErrNotFound
	}
	if s.nameTaken(project.Name, project.ID) {
		return domain.ErrDuplicateName
	}
	if err := project.Check(); err != nil {
		return err
	}
	s.projects[project.ID] = cloneProject(*project)
	return nil
}

func (s *Store) DeleteProject(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return domain.ErrNotFound
	}
	if p.InvestedAmount > 0 {
		return domain.ErrProjectInvested
	}
	delete(s.projects, id)
	return nil
}

func (s *Store) CreateDonation(_ context.Context, donation *domain.Donation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	donation.ID = s.nextID
	donation.InvestedAmount = 0
	donation.FullyInvested = false
	donation.CloseDate = nil
	if donation.CreateDate.IsZero() {
		donation.CreateDate = s.now()
	}
	s.donations[donation.ID] = cloneDonation(*donation)
	return nil
}

func (s *Store) GetDonation(_ context.Context, id int64) (*domain.Donation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.donations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	d = cloneDonation(d)
	return &d, nil
}

func (s *Store) ListDonations(_ context.Context) ([]domain.Donation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedDonations(func(domain.Donation) bool { return true }), nil
}

func (s *Store) ListDonationsByUser(_ context.Context, userID string) ([]domain.Donation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedDonations(func(d domain.Donation) bool { return d.UserID == userID }), nil
}

func (s *Store) ListOpenDonations(_ context.Context) ([]domain.Donation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedDonations(func(d domain.Donation) bool { return d.Open() }), nil
}

func (s *Store) ListOpenProjects(_ context.Context) ([]domain.CharityProject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedProjects(func(p domain.CharityProject) bool { return p.Open() }), nil
}

// Commit validates every guard before writing, so a rejected allocation
// leaves the store untouched.
func (s *Store) Commit(_ context.Context, allocation domain.Allocation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range allocation.Donations {
		cur, ok := s.donations[f.ID]
		if !ok {
			return fmt.Errorf("donation %d: %w", f.ID, domain.ErrNotFound)
		}
		if err := guard(cur.Fundable, f, allocation.DonationsBefore); err != nil {
			return fmt.Errorf("donation %d: %w", f.ID, err)
		}
	}
	for _, f := range allocation.Projects {
		cur, ok := s.projects[f.ID]
		if !ok {
			return fmt.Errorf("project %d: %w", f.ID, domain.ErrNotFound)
		}
		if err := guard(cur.Fundable, f, allocation.ProjectsBefore); err != nil {
			return fmt.Errorf("project %d: %w", f.ID, err)
		}
	}

	for _, f := range allocation.Donations {
		d := s.donations[f.ID]
		d.Fundable = cloneFundable(f)
		s.donations[f.ID] = d
	}
	for _, f := range allocation.Projects {
		p := s.projects[f.ID]
		p.Fundable = cloneFundable(f)
		s.projects[f.ID] = p
	}
	return nil
}

func guard(current, next domain.Fundable, before map[int64]int64) error {
	if !current.Open() || current.InvestedAmount != before[next.ID] || current.FullAmount != next.FullAmount {
		return domain.ErrConflict
	}
	return next.Check()
}

func (s *Store) nameTaken(name string, except int64) bool {
	for id, p := range s.projects {
		if id != except && p.Name == name {
			return true
		}
	}
	return false
}

func (s *Store) sortedProjects(keep func(domain.CharityProject) bool) []domain.CharityProject {
	out := make([]domain.CharityProject, 0, len(s.projects))
	for _, p := range s.projects {
		if keep(p) {
			out = append(out, cloneProject(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return before(out[i].Fundable, out[j].Fundable) })
	return out
}

func (s *Store) sortedDonations(keep func(domain.Donation) bool) []domain.Donation {
	out := make([]domain.Donation, 0, len(s.donations))
	for _, d := range s.donations {
		if keep(d) {
			out = append(out, cloneDonation(d))
		}
	}
	sort.Slice(out, func(i, j int) bool { return before(out[i].Fundable, out[j].Fundable) })
	return out
}

func before(a, b domain.Fundable) bool {
	if !a.CreateDate.Equal(b.CreateDate) {
		return a.CreateDate.Before(b.CreateDate)
	}
	return a.ID < b.ID
}

func cloneFundable(f domain.Fundable) domain.Fundable {
	if f.CloseDate != nil {
		closed := *f.CloseDate
		f.CloseDate = &closed
	}
	return f
}

func cloneProject(p domain.CharityProject) domain.CharityProject {
	p.Fundable = cloneFundable(p.Fundable)
	return p
}

func cloneDonation(d domain.Donation) domain.Donation {
	d.Fundable = cloneFundable(d.Fundable)
	if d.Comment != nil {
		comment := *d.Comment
		d.Comment = &comment
	}
	return d
}

var _ domain.Store = (*Store)(nil)
