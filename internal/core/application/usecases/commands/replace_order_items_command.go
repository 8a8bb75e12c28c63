package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/guard"
)

var ErrReplaceOrderItemsCommandIsNotConstructed = errors.New(
	"ReplaceOrderItemsCommand must be created via NewReplaceOrderItemsCommand constructor",
)

// ReplaceOrderItemsCommand swaps the whole item list of an order.
type ReplaceOrderItemsCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	items   []*order.Item

	guard guard.ConstructorGuard
}

// NewReplaceOrderItemsCommand validates the order id and every line.
func NewReplaceOrderItemsCommand(orderID kernel.UUID, items []ItemInput) (ReplaceOrderItemsCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ReplaceOrderItemsCommand{}, err
	}

	built, err := buildItems(items)
	if err != nil {
		return ReplaceOrderItemsCommand{}, err
	}

	return ReplaceOrderItemsCommand{
		orderID: orderID,
		items:   built,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ReplaceOrderItemsCommand) Validate() error {
	return c.guard.Validate(ErrReplaceOrderItemsCommandIsNotConstructed)
}

func (c ReplaceOrderItemsCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ReplaceOrderItemsCommand) Items() []*order.Item {
	return c.items
}
