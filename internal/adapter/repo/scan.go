package repo

import (
	"time"

	"github.com/jackc/pgx/v5"

	"charityfund/internal/domain"
)

func scanProject(row pgx.Row) (*domain.CharityProject, error) {
	var (
		p         domain.CharityProject
		closeDate *time.Time
	)
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.FullAmount,
		&p.InvestedAmount,
		&p.FullyInvested,
		&p.CreateDate,
		&closeDate,
	); err != nil {
		return nil, err
	}
	p.CloseDate = closeDate
	return &p, nil
}

func scanDonation(row pgx.Row) (*domain.Donation, error) {
	var (
		d         domain.Donation
		comment   *string
		closeDate *time.Time
	)
	if err := row.Scan(
		&d.ID,
		&d.UserID,
		&comment,
		&d.FullAmount,
		&d.InvestedAmount,
		&d.FullyInvested,
		&d.CreateDate,
		&closeDate,
	); err != nil {
		return nil, err
	}
	d.Comment = comment
	d.CloseDate = closeDate
	return &d, nil
}

func collectProjects(rows pgx.Rows) ([]domain.CharityProject, error) {
	defer rows.Close()
	var items []domain.CharityProject
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func collectDonations(rows pgx.Rows) ([]domain.Donation, error) {
	defer rows.Close()
	var items []domain.Donation
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
