package infra

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisLockOptions configures RedisLocker.
type RedisLockOptions struct {
	Expiry     time.Duration
	Tries      int
	RetryDelay time.Duration
}

// DefaultRedisLockOptions suits reconciliation runs that finish well within seconds.
func DefaultRedisLockOptions() RedisLockOptions {
	return RedisLockOptions{
		Expiry:     10 * time.Second,
		Tries:      64,
		RetryDelay: 50 * time.Millisecond,
	}
}

// RedisLocker serializes reconciliation across service instances with the
// RedLock algorithm.
type RedisLocker struct {
	rs     *redsync.Redsync
	opts   RedisLockOptions
	logger zerolog.Logger
}

// NewRedisClient parses url and verifies the server answers.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// NewRedisLocker creates a locker on top of client.
func NewRedisLocker(client redis.UniversalClient, opts RedisLockOptions, logger zerolog.Logger) (*RedisLocker, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if opts.Expiry <= 0 {
		return nil, errors.New("lock expiry must be greater than 0")
	}
	if opts.Tries < 1 {
		return nil, errors.New("lock tries must be at least 1")
	}
	return &RedisLocker{
		rs:     redsync.New(goredis.NewPool(client)),
		opts:   opts,
		logger: logger,
	}, nil
}

// WithLock runs fn while holding the distributed lock named key.
func (l *RedisLocker) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	mutex := l.rs.NewMutex(
		key,
		redsync.WithExpiry(l.opts.Expiry),
		redsync.WithTries(l.opts.Tries),
		redsync.WithRetryDelay(l.opts.RetryDelay),
	)
	if err := mutex.LockContext(ctx); err != nil {
		return fmt.Errorf("acquire lock %s: %w", key, err)
	}
	l.logger.Debug().Str("lock_key", key).Msg("lock acquired")

	defer func() {
		// Release with a fresh context so a cancelled request cannot leak the lock until expiry.
		unlockCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		if ok, err := mutex.UnlockContext(unlockCtx); !ok || err != nil {
			l.logger.Error().Err(err).Str("lock_key", key).Bool("unlock_ok", ok).Msg("failed to release lock")
		}
	}()

	return fn(ctx)
}
