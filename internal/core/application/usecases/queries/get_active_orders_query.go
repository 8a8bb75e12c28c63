package queries

import (
	"errors"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/guard"
)

var ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
	"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
)

// GetActiveOrdersQuery lists orders that still need work: pending or processing.
//
// Example:
//
//	query := NewGetActiveOrdersQuery()
//	handler := NewGetActiveOrdersQueryHandler(db)
//
//	active, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list active orders: %w", err)
//	}
//	for _, o := range active {
//	    fmt.Printf("%s %s %s\n", o.Number, o.Status, o.TotalAmount)
//	}
type GetActiveOrdersQuery struct {
	guard guard.ConstructorGuard
}

func NewGetActiveOrdersQuery() GetActiveOrdersQuery {
	return GetActiveOrdersQuery{guard: guard.NewConstructorGuard()}
}

func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

// GetActiveOrdersQueryResponse is a summary row of an open order.
type GetActiveOrdersQueryResponse struct {
	ID            kernel.UUID
	Number        string
	Status        order.Status
	PaymentStatus order.PaymentStatus
	TotalAmount   kernel.Money
	CreatedAt     time.Time
}
