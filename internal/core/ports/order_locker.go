package ports

import (
	"context"

	"orders/internal/core/domain/model/kernel"
)

// Unlock releases a lock obtained from OrderLocker. It is safe to call once.
type Unlock func(ctx context.Context) error

// OrderLocker serializes writers of the same order.
//
// Lock blocks until the caller is the only holder for orderID, the context is done,
// or the implementation gives up. Giving up is reported as errs.ErrConcurrentModification.
// Locks on different orders never block each other.
type OrderLocker interface {
	Lock(ctx context.Context, orderID kernel.UUID) (Unlock, error)
}
