package locker_test

import (
	"context"
	"testing"
	"time"

	"orders/internal/adapters/out/locker"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedis_LockSetsLeaseAndUnlockRemovesIt(t *testing.T) {
	// Given
	mr, client := newRedis(t)
	l := locker.NewRedis(client, locker.WithTTL(3*time.Second), locker.WithKeyPrefix("test:"))
	id := kernel.NewUUID()

	// When
	unlock, err := l.Lock(t.Context(), id)

	// Then
	require.NoError(t, err)
	key := "test:" + id.String()
	assert.True(t, mr.Exists(key))
	assert.Equal(t, 3*time.Second, mr.TTL(key))

	require.NoError(t, unlock(t.Context()))
	assert.False(t, mr.Exists(key))
	require.NoError(t, unlock(t.Context()), "second unlock is a no-op")
}

func TestRedis_HeldLockExhaustsRetries(t *testing.T) {
	_, client := newRedis(t)
	l := locker.NewRedis(client, locker.WithRetries(2), locker.WithRetryDelay(time.Millisecond))
	id := kernel.NewUUID()

	unlock, err := l.Lock(t.Context(), id)
	require.NoError(t, err)
	defer func() { _ = unlock(t.Context()) }()

	_, err = l.Lock(t.Context(), id)

	require.ErrorIs(t, err, errs.ErrConcurrentModification)
	assert.True(t, errs.IsRuleViolation(err))
}

func TestRedis_WaiterAcquiresAfterRelease(t *testing.T) {
	_, client := newRedis(t)
	l := locker.NewRedis(client, locker.WithRetries(100), locker.WithRetryDelay(5*time.Millisecond))
	id := kernel.NewUUID()

	unlock, err := l.Lock(t.Context(), id)
	require.NoError(t, err)

	result := make(chan error, 1)
	go func() {
		secondUnlock, lockErr := l.Lock(context.Background(), id)
		if lockErr == nil {
			lockErr = secondUnlock(context.Background())
		}
		result <- lockErr
	}()

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, unlock(t.Context()))

	select {
	case err := <-result:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("waiter never acquired the lock")
	}
}

func TestRedis_ExpiredLeaseIsNotReleasedByOldHolder(t *testing.T) {
	// Given a lease that expired and was taken over
	mr, client := newRedis(t)
	l := locker.NewRedis(client, locker.WithTTL(time.Second), locker.WithRetries(0))
	id := kernel.NewUUID()

	staleUnlock, err := l.Lock(t.Context(), id)
	require.NoError(t, err)
	mr.FastForward(2 * time.Second)

	freshUnlock, err := l.Lock(t.Context(), id)
	require.NoError(t, err)

	// When
	err = staleUnlock(t.Context())

	// Then
	require.ErrorIs(t, err, errs.ErrConcurrentModification)
	assert.True(t, mr.Exists("orders:lock:"+id.String()))
	require.NoError(t, freshUnlock(t.Context()))
}

func TestRedis_ContextCancelledWhileRetrying(t *testing.T) {
	_, client := newRedis(t)
	l := locker.NewRedis(client, locker.WithRetries(1000), locker.WithRetryDelay(10*time.Millisecond))
	id := kernel.NewUUID()

	unlock, err := l.Lock(t.Context(), id)
	require.NoError(t, err)
	defer func() { _ = unlock(t.Context()) }()

	ctx, cancel := context.WithTimeout(t.Context(), 30*time.Millisecond)
	defer cancel()

	_, err = l.Lock(ctx, id)

	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRedis_ServerUnavailable(t *testing.T) {
	mr, client := newRedis(t)
	l := locker.NewRedis(client)
	mr.Close()

	_, err := l.Lock(t.Context(), kernel.NewUUID())

	require.Error(t, err)
	assert.NotErrorIs(t, err, errs.ErrConcurrentModification)
}
