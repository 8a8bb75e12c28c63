// Package queries contains read-side operations. Handlers read straight from the
// database into response structs and never load aggregates.
package queries

import (
	"errors"
	"strings"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery or NewGetOrderByNumberQuery constructor",
)

// GetOrderQuery looks up one order either by id or by order number.
//
// Example:
//
//	query, err := NewGetOrderByNumberQuery("ORD-1A2B3C4D")
//	if err != nil {
//	    return err
//	}
//
//	snapshot, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order: %w", err)
//	}
//	fmt.Printf("%s: %s (%s)\n", snapshot.Number, snapshot.TotalAmount, snapshot.Status)
type GetOrderQuery struct {
	orderID kernel.UUID
	number  string
	guard   guard.ConstructorGuard
}

// NewGetOrderQuery creates a lookup by order id.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// NewGetOrderByNumberQuery creates a lookup by order number.
func NewGetOrderByNumberQuery(number string) (GetOrderQuery, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return GetOrderQuery{}, errs.NewValueIsRequiredError("orderNumber")
	}
	return GetOrderQuery{number: number, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through a constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the id to look up; it is the zero value for lookups by number.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Number returns the order number to look up; it is empty for lookups by id.
func (q GetOrderQuery) Number() string {
	return q.number
}

// GetOrderQueryResponse is the presentation snapshot of an order.
// Subtotal is the sum of the item line totals and TotalAmount adds the delivery charge.
type GetOrderQueryResponse struct {
	ID              kernel.UUID
	Number          string
	CustomerID      int64
	CustomerEmail   string
	CustomerName    string
	DeliveryAddress string
	DeliveryCity    string
	DeliveryCountry string
	Status          order.Status
	PaymentStatus   order.PaymentStatus
	Items           []GetOrderItemResponse
	Subtotal        kernel.Money
	DeliveringCost  kernel.Money
	TotalAmount     kernel.Money
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	PaidAt          *time.Time
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
	RefundedAt      *time.Time
	Version         int
}

// GetOrderItemResponse is one order line in insertion order.
type GetOrderItemResponse struct {
	ID          kernel.UUID
	ProductID   int64
	ProductName string
	Quantity    int
	UnitPrice   kernel.Money
	LineTotal   kernel.Money
}
