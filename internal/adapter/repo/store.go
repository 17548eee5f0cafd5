package repo

import (
	"charityfund/internal/domain"
	"charityfund/internal/infra"
)

// Store combines the PostgreSQL repositories into one domain.Store.
type Store struct {
	*ProjectRepositoryPG
	*DonationRepositoryPG
	*LedgerRepositoryPG
}

// NewStore builds every repository on top of runner.
func NewStore(runner infra.TxRunner, lockName string) *Store {
	return &Store{
		ProjectRepositoryPG:  NewProjectRepository(runner),
		DonationRepositoryPG: NewDonationRepository(runner),
		LedgerRepositoryPG:   NewLedgerRepository(runner, lockName),
	}
}

var _ domain.Store = (*Store)(nil)
