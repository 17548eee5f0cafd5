package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"charityfund/internal/domain"
	"charityfund/internal/infra"
	"charityfund/internal/sqlinline"
)

// DonationRepositoryPG implements domain.DonationRepository using PostgreSQL.
type DonationRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewDonationRepository creates a new donation repo.
func NewDonationRepository(sql infra.SQLExecutor) *DonationRepositoryPG {
	return &DonationRepositoryPG{sql: sql}
}

// CreateDonation inserts an open donation record.
func (r *DonationRepositoryPG) CreateDonation(ctx context.Context, donation *domain.Donation) error {
	row := r.sql.QueryRow(ctx, sqlinline.QInsertDonation, donation.UserID, donation.Comment, donation.FullAmount)
	if err := row.Scan(&donation.ID, &donation.CreateDate); err != nil {
		return fmt.Errorf("insert donation: %w", err)
	}
	donation.InvestedAmount = 0
	donation.FullyInvested = false
	donation.CloseDate = nil
	return nil
}

func (r *DonationRepositoryPG) GetDonation(ctx context.Context, id int64) (*domain.Donation, error) {
	d, err := scanDonation(r.sql.QueryRow(ctx, sqlinline.QGetDonation, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get donation %d: %w", id, err)
	}
	return d, nil
}

func (r *DonationRepositoryPG) ListDonations(ctx context.Context) ([]domain.Donation, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListDonations)
	if err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	return collectDonations(rows)
}

func (r *DonationRepositoryPG) ListDonationsByUser(ctx context.Context, userID string) ([]domain.Donation, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListDonationsByUser, userID)
	if err != nil {
		return nil, fmt.Errorf("list donations of %s: %w", userID, err)
	}
	return collectDonations(rows)
}

var _ domain.DonationRepository = (*DonationRepositoryPG)(nil)
