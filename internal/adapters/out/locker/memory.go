// Package locker provides ports.OrderLocker implementations.
//
// Memory serializes writers inside one process. Redis serializes writers across
// processes that share a Redis instance, using short leases so a crashed holder
// cannot block an order forever.
package locker

import (
	"context"
	"sync"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/ports"
)

var _ ports.OrderLocker = (*Memory)(nil)

// Memory is a process-local keyed mutex. Entries are reference counted and removed
// once nobody holds or waits for them, so the map only grows with contention.
type Memory struct {
	mu    sync.Mutex
	locks map[kernel.UUID]*memoryLock
}

type memoryLock struct {
	sem  chan struct{}
	refs int
}

// NewMemory creates an empty in-process locker.
func NewMemory() *Memory {
	return &Memory{locks: make(map[kernel.UUID]*memoryLock)}
}

// Lock waits until orderID is free or ctx is done.
func (m *Memory) Lock(ctx context.Context, orderID kernel.UUID) (ports.Unlock, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	l := m.acquireEntry(orderID)

	select {
	case l.sem <- struct{}{}:
	case <-ctx.Done():
		m.releaseEntry(orderID, l)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func(context.Context) error {
		once.Do(func() {
			<-l.sem
			m.releaseEntry(orderID, l)
		})
		return nil
	}, nil
}

// Len returns the number of orders currently held or waited for.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.locks)
}

func (m *Memory) acquireEntry(orderID kernel.UUID) *memoryLock {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.locks[orderID]
	if !ok {
		l = &memoryLock{sem: make(chan struct{}, 1)}
		m.locks[orderID] = l
	}
	l.refs++
	return l
}

func (m *Memory) releaseEntry(orderID kernel.UUID, l *memoryLock) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l.refs--
	if l.refs == 0 {
		delete(m.locks, orderID)
	}
}
