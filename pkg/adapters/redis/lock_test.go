package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/flowsmith/flowsmith/pkg/adapters/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocker_AcquireAndRelease(t *testing.T) {
	_, client := newTestClient(t)
	locker := redis.NewLocker(client, "flowsmith:run:")
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "run-1", 5*time.Second)
	require.NoError(t, err)

	// A second holder must not get the lock while it is held.
	blockedCtx, cancel := context.WithTimeout(ctx, 300*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(blockedCtx, "run-1", 5*time.Second)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, unlock(ctx))

	unlock2, err := locker.Lock(ctx, "run-1", 5*time.Second)
	require.NoError(t, err)
	require.NoError(t, unlock2(ctx))
}

func TestLocker_IndependentKeys(t *testing.T) {
	_, client := newTestClient(t)
	locker := redis.NewLocker(client, "flowsmith:run:")
	ctx := context.Background()

	unlockA, err := locker.Lock(ctx, "run-a", time.Second)
	require.NoError(t, err)
	defer func() { _ = unlockA(ctx) }()

	unlockB, err := locker.Lock(ctx, "run-b", time.Second)
	require.NoError(t, err)
	require.NoError(t, unlockB(ctx))
}
