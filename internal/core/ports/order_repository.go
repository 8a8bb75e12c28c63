// Package ports defines the contracts between the order domain and infrastructure.
// Application services depend on these interfaces only, which keeps storage and
// locking replaceable and testable.
package ports

import (
	"context"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// An order is always stored and loaded together with its items.
type OrderRepository interface {
	// Add persists a new order with its items.
	// A duplicate order number is reported as errs.ErrValueIsInvalid.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists a loaded order, replacing its items.
	// The write only succeeds if the stored version still equals aggregate.Version();
	// otherwise errs.ErrConcurrentModification is returned and nothing is written.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get loads an order and its items by identifier.
	// Returns errs.ErrObjectNotFound when no order matches.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber loads an order and its items by order number.
	GetByNumber(ctx context.Context, number string) (*order.Order, error)
}
