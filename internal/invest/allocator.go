package invest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog"

	"charityfund/internal/domain"
)

// DefaultLockKey names the lock shared by every reconciliation run.
const DefaultLockKey = "lock:charityfund:reconcile"

// Store is the persistence surface the Allocator needs.
type Store interface {
	domain.LedgerStore
	GetDonation(ctx context.Context, id int64) (*domain.Donation, error)
	GetProject(ctx context.Context, id int64) (*domain.CharityProject, error)
}

// Options tunes an Allocator. Zero values fall back to defaults.
type Options struct {
	LockKey string
	// MaxRetries bounds the re-runs after a commit conflict; the first
	// attempt is not counted.
	MaxRetries uint
	Now        func() time.Time
}

// Allocator runs the reconciliation cycle (read open sets, reconcile, commit)
// under a Locker and retries commits that lost a race with another writer.
type Allocator struct {
	store      Store
	locker     Locker
	logger     zerolog.Logger
	lockKey    string
	maxRetries uint
	now        func() time.Time
}

// NewAllocator wires an Allocator.
func NewAllocator(store Store, locker Locker, logger zerolog.Logger, opts Options) *Allocator {
	a := &Allocator{
		store:      store,
		locker:     locker,
		logger:     logger,
		lockKey:    opts.LockKey,
		maxRetries: opts.MaxRetries,
		now:        opts.Now,
	}
	if a.locker == nil {
		a.locker = NewLocalLocker()
	}
	if a.lockKey == "" {
		a.lockKey = DefaultLockKey
	}
	if a.maxRetries == 0 {
		a.maxRetries = 5
	}
	if a.now == nil {
		a.now = func() time.Time { return time.Now().UTC() }
	}
	return a
}

// OnDonationCreated reconciles after a donation was persisted and returns the
// donation as it stands after the run.
func (a *Allocator) OnDonationCreated(ctx context.Context, donationID int64) (*domain.Donation, error) {
	if _, err := a.Run(ctx); err != nil {
		return nil, err
	}
	return a.store.GetDonation(ctx, donationID)
}

// OnProjectCreated reconciles after a project was persisted and returns the
// project as it stands after the run.
func (a *Allocator) OnProjectCreated(ctx context.Context, projectID int64) (*domain.CharityProject, error) {
	if _, err := a.Run(ctx); err != nil {
		return nil, err
	}
	return a.store.GetProject(ctx, projectID)
}

// Run performs one reconciliation over the current open sets.
func (a *Allocator) Run(ctx context.Context) (domain.Allocation, error) {
	attempt := 0
	op := func() (domain.Allocation, error) {
		attempt++
		var result domain.Allocation
		err := a.locker.WithLock(ctx, a.lockKey, func(ctx context.Context) error {
			var err error
			result, err = a.runOnce(ctx)
			return err
		})
		if err != nil && !errors.Is(err, domain.ErrConflict) {
			return domain.Allocation{}, backoff.Permanent(err)
		}
		return result, err
	}

	result, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(newBackOff()),
		backoff.WithMaxTries(a.maxRetries+1),
		backoff.WithNotify(func(err error, wait time.Duration) {
			a.logger.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", wait).Msg("reconciliation conflict")
		}),
	)
	if err != nil {
		if errors.Is(err, domain.ErrInvariantViolation) {
			a.logger.Error().Err(err).Msg("reconciliation aborted")
		}
		return domain.Allocation{}, fmt.Errorf("reconcile: %w", err)
	}
	return result, nil
}

func (a *Allocator) runOnce(ctx context.Context) (domain.Allocation, error) {
	donations, err := a.store.ListOpenDonations(ctx)
	if err != nil {
		return domain.Allocation{}, fmt.Errorf("list open donations: %w", err)
	}
	projects, err := a.store.ListOpenProjects(ctx)
	if err != nil {
		return domain.Allocation{}, fmt.Errorf("list open projects: %w", err)
	}

	donationQueue := make([]*domain.Fundable, len(donations))
	for i := range donations {
		donationQueue[i] = &donations[i].Fundable
	}
	projectQueue := make([]*domain.Fundable, len(projects))
	for i := range projects {
		projectQueue[i] = &projects[i].Fundable
	}

	result, err := Reconcile(donationQueue, projectQueue, a.now())
	if err != nil {
		return domain.Allocation{}, err
	}
	if result.Empty() {
		a.logger.Debug().
			Int("open_donations", len(donations)).
			Int("open_projects", len(projects)).
			Msg("nothing to allocate")
		return result, nil
	}

	if err := a.store.Commit(ctx, result); err != nil {
		return domain.Allocation{}, fmt.Errorf("commit allocation: %w", err)
	}

	for _, t := range result.Transfers {
		a.logger.Debug().
			Int64("donation_id", t.DonationID).
			Int64("project_id", t.ProjectID).
			Int64("amount", t.Amount).
			Msg("transfer")
	}
	a.logger.Info().
		Int("transfers", len(result.Transfers)).
		Int64("amount", result.Total()).
		Int("closed_donations", countClosed(result.Donations)).
		Int("closed_projects", countClosed(result.Projects)).
		Msg("allocation committed")
	return result, nil
}

func newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 20 * time.Millisecond
	b.MaxInterval = 500 * time.Millisecond
	return b
}

func countClosed(records []domain.Fundable) int {
	n := 0
	for _, r := range records {
		if r.FullyInvested {
			n++
		}
	}
	return n
}

// Exclusive runs fn under the reconciliation lock, so edits to allocation
// inputs (a project's target, a deletion) cannot interleave with a run.
func (a *Allocator) Exclusive(ctx context.Context, fn func(ctx context.Context) error) error {
	return a.locker.WithLock(ctx, a.lockKey, fn)
}
