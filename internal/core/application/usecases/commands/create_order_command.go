package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to place a new order.
//
// Example:
//
//	customer, _ := kernel.NewCustomer(42, "ann@example.com", "Ann")
//	address, _ := kernel.NewDeliveryAddress("Lenina 1", "Moscow", "")
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), "", customer, address,
//	    []ItemInput{{ProductID: 7, ProductName: "Mug", Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")}},
//	    decimal.RequireFromString("5.00"),
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	orderNumber    string
	customer       kernel.Customer
	address        kernel.DeliveryAddress
	items          []*order.Item
	deliveringCost decimal.Decimal

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request. Items are built here, so an invalid line
// is reported as order.ErrInvalidItem and a negative charge as order.ErrInvalidDeliveringCost
// before any storage is touched. An empty orderNumber asks for a generated one.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	orderNumber string,
	customer kernel.Customer,
	address kernel.DeliveryAddress,
	items []ItemInput,
	deliveringCost decimal.Decimal,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		orderNumber: orderNumber,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomer(customer),
		cmd.setAddress(address),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	if err := cmd.setItems(items); err != nil {
		return CreateOrderCommand{}, err
	}

	if err := cmd.setDeliveringCost(deliveringCost); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will get.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OrderNumber returns the requested order number, or "" to generate one.
func (c CreateOrderCommand) OrderNumber() string {
	return c.orderNumber
}

// Customer returns the customer snapshot.
func (c CreateOrderCommand) Customer() kernel.Customer {
	return c.customer
}

// Address returns the delivery address.
func (c CreateOrderCommand) Address() kernel.DeliveryAddress {
	return c.address
}

// Items returns the validated order lines.
func (c CreateOrderCommand) Items() []*order.Item {
	return c.items
}

// DeliveringCost returns the delivery charge.
func (c CreateOrderCommand) DeliveringCost() decimal.Decimal {
	return c.deliveringCost
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomer(customer kernel.Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}

	c.customer = customer
	return nil
}

func (c *CreateOrderCommand) setAddress(address kernel.DeliveryAddress) error {
	if err := address.Validate(); err != nil {
		return err
	}

	c.address = address
	return nil
}

func (c *CreateOrderCommand) setItems(inputs []ItemInput) error {
	items, err := buildItems(inputs)
	if err != nil {
		return err
	}

	c.items = items
	return nil
}

func (c *CreateOrderCommand) setDeliveringCost(deliveringCost decimal.Decimal) error {
	if _, err := kernel.NewMoney(deliveringCost); err != nil {
		return errs.NewRuleViolationErrorWithCause(order.ErrInvalidDeliveringCost, deliveringCost.String(), err)
	}

	c.deliveringCost = deliveringCost
	return nil
}
