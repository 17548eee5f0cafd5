package invest

import (
	"context"
	"fmt"
)

// Locker serializes reconciliation runs. WithLock runs fn while holding the
// lock named by key and releases it afterwards, even when fn fails.
type Locker interface {
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// LocalLocker is a process-wide Locker for single-instance deployments.
type LocalLocker struct {
	sem chan struct{}
}

// NewLocalLocker creates an unlocked LocalLocker.
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{sem: make(chan struct{}, 1)}
}

// WithLock waits for the lock or for ctx to end. Every key shares one lock.
func (l *LocalLocker) WithLock(ctx context.Context, _ string, fn func(ctx context.Context) error) error {
	select {
	case l.sem <- struct{}{}:
	case <-ctx.Done():
		return fmt.Errorf("acquire reconciliation lock: %w", ctx.Err())
	}
	defer func() { <-l.sem }()
	return fn(ctx)
}

var _ Locker = (*LocalLocker)(nil)
