package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var ErrUpdateOrderFieldsCommandIsNotConstructed = errors.New(
	"UpdateOrderFieldsCommand must be created via NewUpdateOrderFieldsCommand constructor",
)

// UpdateOrderFieldsCommand applies a partial update to an order.
// Keys are wire field names such as "address" or "deliveringCost".
type UpdateOrderFieldsCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	patch   order.Patch

	guard guard.ConstructorGuard
}

// NewUpdateOrderFieldsCommand copies fields into a patch. Which keys may be written
// is decided by the order itself, so read-only names are accepted here and
// rejected on apply.
func NewUpdateOrderFieldsCommand(orderID kernel.UUID, fields map[string]string) (UpdateOrderFieldsCommand, error) {
	if err := orderID.Validate(); err != nil {
		return UpdateOrderFieldsCommand{}, err
	}

	if len(fields) == 0 {
		return UpdateOrderFieldsCommand{}, errs.NewValueIsRequiredError("fields")
	}

	patch := make(order.Patch, len(fields))
	for name, value := range fields {
		patch[order.Field(name)] = value
	}

	return UpdateOrderFieldsCommand{
		orderID: orderID,
		patch:   patch,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderFieldsCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderFieldsCommandIsNotConstructed)
}

func (c UpdateOrderFieldsCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Patch returns a copy of the requested changes.
func (c UpdateOrderFieldsCommand) Patch() order.Patch {
	patch := make(order.Patch, len(c.patch))
	for k, v := range c.patch {
		patch[k] = v
	}
	return patch
}
