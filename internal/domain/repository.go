package domain

import "context"

// ProjectRepository defines persistence for charity projects.
type ProjectRepository interface {
	CreateProject(ctx context.Context, project *CharityProject) error
	GetProject(ctx context.Context, id int64) (*CharityProject, error)
	GetProjectIDByName(ctx context.Context, name string) (int64, bool, error)
	ListProjects(ctx context.Context) ([]CharityProject, error)
	UpdateProject(ctx context.Context, project *CharityProject) error
	DeleteProject(ctx context.Context, id int64) error
}

// DonationRepository handles donation persistence.
type DonationRepository interface {
	CreateDonation(ctx context.Context, donation *Donation) error
	GetDonation(ctx context.Context, id int64) (*Donation, error)
	ListDonations(ctx context.Context) ([]Donation, error)
	ListDonationsByUser(ctx context.Context, userID string) ([]Donation, error)
}

// LedgerStore is the part of persistence the allocator depends on. Open
// records come back ordered by create date, then id. Commit writes every
// record of the allocation or none of them and returns ErrConflict when a
// record changed since it was read.
type LedgerStore interface {
	ListOpenDonations(ctx context.Context) ([]Donation, error)
	ListOpenProjects(ctx context.Context) ([]CharityProject, error)
	Commit(ctx context.Context, allocation Allocation) error
}

// Store bundles every persistence contract the service needs.
type Store interface {
	ProjectRepository
	DonationRepository
	LedgerStore
}
