// Package bootstrap assembles the storage, locking and allocation components
// selected by the configuration. Both binaries share it.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"charityfund/internal/adapter/memstore"
	"charityfund/internal/adapter/repo"
	"charityfund/internal/domain"
	"charityfund/internal/infra"
	"charityfund/internal/invest"
)

// Services are the long-lived components built from a Config.
type Services struct {
	Store     domain.Store
	Allocator *invest.Allocator

	closers []func()
}

// Close releases connections in reverse order of creation.
func (s *Services) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}

// Open builds the store (postgres or memory), the reconciliation locker
// (redis when REDIS_URL is set, in-process otherwise) and the Allocator.
func Open(ctx context.Context, cfg *infra.Config, logger zerolog.Logger) (*Services, error) {
	svc := &Services{}

	store, err := svc.openStore(ctx, cfg, logger)
	if err != nil {
		svc.Close()
		return nil, err
	}
	locker, err := svc.openLocker(ctx, cfg, logger)
	if err != nil {
		svc.Close()
		return nil, err
	}

	svc.Store = store
	svc.Allocator = invest.NewAllocator(store, locker, logger.With().Str("component", "allocator").Logger(), invest.Options{
		LockKey:    cfg.LockKey,
		MaxRetries: uint(cfg.ReconcileMaxRetries),
	})
	return svc, nil
}

func (s *Services) openStore(ctx context.Context, cfg *infra.Config, logger zerolog.Logger) (domain.Store, error) {
	switch cfg.StorageDriver {
	case infra.StorageDriverMemory:
		logger.Warn().Msg("using in-memory storage, data is lost on restart")
		return memstore.New(nil), nil
	case infra.StorageDriverPostgres:
		pool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, pool.Close)
		if cfg.RunMigrations {
			if err := infra.Migrate(pool); err != nil {
				return nil, err
			}
			logger.Info().Msg("migrations applied")
		}
		runner := infra.NewSQLRunner(pool, logger.With().Str("component", "sql").Logger())
		return repo.NewStore(runner, cfg.LockKey), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

func (s *Services) openLocker(ctx context.Context, cfg *infra.Config, logger zerolog.Logger) (invest.Locker, error) {
	if cfg.RedisURL == "" {
		return invest.NewLocalLocker(), nil
	}
	client, err := infra.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	s.closers = append(s.closers, func() { _ = client.Close() })

	opts := infra.DefaultRedisLockOptions()
	if cfg.LockExpiry > 0 {
		opts.Expiry = cfg.LockExpiry
	}
	locker, err := infra.NewRedisLocker(client, opts, logger.With().Str("component", "lock").Logger())
	if err != nil {
		return nil, err
	}
	logger.Info().Str("key", cfg.LockKey).Msg("distributed reconciliation lock enabled")
	return locker, nil
}
