// Package invest reconciles open donations against open charity projects.
package invest

import (
	"fmt"
	"time"

	"charityfund/internal/domain"
)

// Reconcile allocates open donations to open projects, oldest first on both
// sides. Records are mutated in place; the returned allocation lists every
// touched record in the order it was touched together with the transfers.
//
// Both slices must hold open records ordered by create date. Anything else is
// a caller defect and aborts the run before the first transfer.
func Reconcile(donations, projects []*domain.Fundable, now time.Time) (domain.Allocation, error) {
	if err := checkQueue("donation", donations); err != nil {
		return domain.Allocation{}, err
	}
	if err := checkQueue("project", projects); err != nil {
		return domain.Allocation{}, err
	}

	out := domain.Allocation{
		DonationsBefore: make(map[int64]int64),
		ProjectsBefore:  make(map[int64]int64),
	}
	di, pi := 0, 0
	for di < len(donations) && pi < len(projects) {
		donation, project := donations[di], projects[pi]
		if _, seen := out.DonationsBefore[donation.ID]; !seen {
			out.DonationsBefore[donation.ID] = donation.InvestedAmount
		}
		if _, seen := out.ProjectsBefore[project.ID]; !seen {
			out.ProjectsBefore[project.ID] = project.InvestedAmount
		}

		amount := min(donation.Remaining(), project.Remaining())
		donation.InvestedAmount += amount
		project.InvestedAmount += amount
		out.Transfers = append(out.Transfers, domain.Transfer{
			DonationID: donation.ID,
			ProjectID:  project.ID,
			Amount:     amount,
		})

		if donation.Remaining() == 0 {
			donation.Close(now)
			out.Donations = append(out.Donations, *donation)
			di++
		}
		if project.Remaining() == 0 {
			project.Close(now)
			out.Projects = append(out.Projects, *project)
			pi++
		}
	}

	// The cursor that stopped the loop may sit on a partially funded record.
	if di < len(donations) && donations[di].InvestedAmount != beforeOr(out.DonationsBefore, donations[di]) {
		out.Donations = append(out.Donations, *donations[di])
	}
	if pi < len(projects) && projects[pi].InvestedAmount != beforeOr(out.ProjectsBefore, projects[pi]) {
		out.Projects = append(out.Projects, *projects[pi])
	}
	return out, nil
}

func beforeOr(before map[int64]int64, f *domain.Fundable) int64 {
	if v, ok := before[f.ID]; ok {
		return v
	}
	return f.InvestedAmount
}

func checkQueue(kind string, queue []*domain.Fundable) error {
	for i, f := range queue {
		if f == nil {
			return fmt.Errorf("%w: nil %s at position %d", domain.ErrInvariantViolation, kind, i)
		}
		if err := f.Check(); err != nil {
			return fmt.Errorf("%s: %w", kind, err)
		}
		if !f.Open() {
			return fmt.Errorf("%w: %s %d is already fully invested", domain.ErrInvariantViolation, kind, f.ID)
		}
		if i > 0 && f.CreateDate.Before(queue[i-1].CreateDate) {
			return fmt.Errorf("%w: %s %d is out of creation order", domain.ErrInvariantViolation, kind, f.ID)
		}
	}
	return nil
}
