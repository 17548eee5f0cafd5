package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"charityfund/internal/adapter/memstore"
	"charityfund/internal/domain"
	"charityfund/internal/infra"
)

func memoryConfig() *infra.Config {
	return &infra.Config{
		StorageDriver:       infra.StorageDriverMemory,
		LockKey:             "lock:test",
		LockExpiry:          5 * time.Second,
		ReconcileMaxRetries: 3,
	}
}

func TestOpenMemoryWithLocalLock(t *testing.T) {
	ctx := context.Background()
	svc, err := Open(ctx, memoryConfig(), zerolog.Nop())
	require.NoError(t, err)
	defer svc.Close()

	_, isMem := svc.Store.(*memstore.Store)
	assert.True(t, isMem)

	project := &domain.CharityProject{Name: "Roof", Description: "fix it", Fundable: domain.Fundable{FullAmount: 10}}
	require.NoError(t, svc.Store.CreateProject(ctx, project))
	donation := &domain.Donation{UserID: "u", Fundable: domain.Fundable{FullAmount: 4}}
	require.NoError(t, svc.Store.CreateDonation(ctx, donation))

	got, err := svc.Allocator.OnDonationCreated(ctx, donation.ID)
	require.NoError(t, err)
	assert.True(t, got.FullyInvested)
}

func TestOpenWithRedisLock(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := memoryConfig()
	cfg.RedisURL = "redis://" + mr.Addr()

	svc, err := Open(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer svc.Close()

	_, err = svc.Allocator.Run(context.Background())
	require.NoError(t, err)
}

func TestOpenFailsOnUnreachableRedis(t *testing.T) {
	cfg := memoryConfig()
	cfg.RedisURL = "redis://127.0.0.1:1"

	_, err := Open(context.Background(), cfg, zerolog.Nop())
	require.Error(t, err)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	cfg := memoryConfig()
	cfg.StorageDriver = "sqlite"

	_, err := Open(context.Background(), cfg, zerolog.Nop())
	require.Error(t, err)
}
