package repo

import (
	"context"
	"fmt"
	"hash/fnv"

	"charityfund/internal/domain"
	"charityfund/internal/infra"
	"charityfund/internal/sqlinline"
)

// LedgerRepositoryPG implements domain.LedgerStore using PostgreSQL.
type LedgerRepositoryPG struct {
	sql     infra.TxRunner
	lockKey int64
}

// NewLedgerRepository creates a ledger repo. lockName selects the advisory
// lock taken by every commit.
func NewLedgerRepository(sql infra.TxRunner, lockName string) *LedgerRepositoryPG {
	return &LedgerRepositoryPG{sql: sql, lockKey: advisoryKey(lockName)}
}

func (r *LedgerRepositoryPG) ListOpenDonations(ctx context.Context) ([]domain.Donation, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListOpenDonations)
	if err != nil {
		return nil, fmt.Errorf("list open donations: %w", err)
	}
	return collectDonations(rows)
}

func (r *LedgerRepositoryPG) ListOpenProjects(ctx context.Context) ([]domain.CharityProject, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListOpenProjects)
	if err != nil {
		return nil, fmt.Errorf("list open projects: %w", err)
	}
	return collectProjects(rows)
}

// Commit writes the allocation in one transaction. Each update is guarded by
// the invested amount read before the run; a missed guard rolls everything back.
func (r *LedgerRepositoryPG) Commit(ctx context.Context, allocation domain.Allocation) error {
	if allocation.Empty() {
		return nil
	}
	return r.sql.InTx(ctx, func(tx infra.SQLExecutor) error {
		if _, err := tx.Exec(ctx, sqlinline.QLockLedger, r.lockKey); err != nil {
			return fmt.Errorf("lock ledger: %w", err)
		}
		for _, f := range allocation.Donations {
			if err := commitRecord(ctx, tx, sqlinline.QCommitDonation, f, allocation.DonationsBefore); err != nil {
				return fmt.Errorf("donation %d: %w", f.ID, err)
			}
		}
		for _, f := range allocation.Projects {
			if err := commitRecord(ctx, tx, sqlinline.QCommitProject, f, allocation.ProjectsBefore); err != nil {
				return fmt.Errorf("project %d: %w", f.ID, err)
			}
		}
		return nil
	})
}

func commitRecord(ctx context.Context, tx infra.SQLExecutor, query string, f domain.Fundable, before map[int64]int64) error {
	if err := f.Check(); err != nil {
		return err
	}
	prev, ok := before[f.ID]
	if !ok {
		return fmt.Errorf("%w: no snapshot for record %d", domain.ErrInvariantViolation, f.ID)
	}
	tag, err := tx.Exec(ctx, query, f.ID, f.InvestedAmount, f.FullyInvested, f.CloseDate, prev, f.FullAmount)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return domain.ErrConflict
	}
	return nil
}

func advisoryKey(name string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return int64(h.Sum64())
}

var _ domain.LedgerStore = (*LedgerRepositoryPG)(nil)
