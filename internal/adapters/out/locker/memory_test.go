package locker_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"orders/internal/adapters/out/locker"
	"orders/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_LockUnlock(t *testing.T) {
	// Given
	l := locker.NewMemory()
	id := kernel.NewUUID()

	// When
	unlock, err := l.Lock(t.Context(), id)

	// Then
	require.NoError(t, err)
	assert.Equal(t, 1, l.Len())
	require.NoError(t, unlock(t.Context()))
	require.NoError(t, unlock(t.Context()), "second unlock is a no-op")
	assert.Equal(t, 0, l.Len())
}

func TestMemory_SameOrderWaitsForHolder(t *testing.T) {
	l := locker.NewMemory()
	id := kernel.NewUUID()

	unlock, err := l.Lock(t.Context(), id)
	require.NoError(t, err)

	acquired := make(chan struct{})
	go func() {
		secondUnlock, lockErr := l.Lock(context.Background(), id)
		if lockErr == nil {
			close(acquired)
			_ = secondUnlock(context.Background())
		}
	}()

	select {
	case <-acquired:
		t.Fatal("second writer acquired a held lock")
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, unlock(t.Context()))

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second writer never acquired the released lock")
	}
}

func TestMemory_DifferentOrdersDoNotBlock(t *testing.T) {
	l := locker.NewMemory()

	unlock1, err := l.Lock(t.Context(), kernel.NewUUID())
	require.NoError(t, err)
	defer func() { _ = unlock1(t.Context()) }()

	ctx, cancel := context.WithTimeout(t.Context(), 100*time.Millisecond)
	defer cancel()

	unlock2, err := l.Lock(ctx, kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, unlock2(ctx))
}

func TestMemory_ContextCancelledWhileWaiting(t *testing.T) {
	l := locker.NewMemory()
	id := kernel.NewUUID()

	unlock, err := l.Lock(t.Context(), id)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
	defer cancel()

	_, err = l.Lock(ctx, id)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, unlock(t.Context()))
	assert.Equal(t, 0, l.Len())
}

func TestMemory_RejectsInvalidID(t *testing.T) {
	_, err := locker.NewMemory().Lock(t.Context(), kernel.UUID{})

	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestMemory_SerializesWriters(t *testing.T) {
	l := locker.NewMemory()
	id := kernel.NewUUID()
	counter := 0

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(context.Background(), id)
			if err != nil {
				return
			}
			current := counter
			time.Sleep(time.Microsecond)
			counter = current + 1
			_ = unlock(context.Background())
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
	assert.Equal(t, 0, l.Len())
}
