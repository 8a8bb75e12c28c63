package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var ErrTransitionOrderStatusCommandIsNotConstructed = errors.New(
	"TransitionOrderStatusCommand must be created via NewTransitionOrderStatusCommand constructor",
)

// TransitionOrderStatusCommand moves an order along its lifecycle.
//
// Example:
//
//	cmd, err := NewTransitionOrderStatusCommand(orderID, "delivered", "left at the door")
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type TransitionOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	status  order.Status
	notes   string

	guard guard.ConstructorGuard
}

// NewTransitionOrderStatusCommand parses the target status name. A name outside
// the lifecycle can never be reached, so it is reported as an invalid transition.
func NewTransitionOrderStatusCommand(
	orderID kernel.UUID,
	status string,
	notes string,
) (TransitionOrderStatusCommand, error) {
	if err := orderID.Validate(); err != nil {
		return TransitionOrderStatusCommand{}, err
	}

	next, err := order.ParseStatus(status)
	if err != nil {
		return TransitionOrderStatusCommand{}, errs.NewRuleViolationErrorWithCause(
			order.ErrInvalidStatusTransition, "to "+status, err,
		)
	}

	return newTransitionOrderStatusCommand(orderID, next, notes), nil
}

// NewCancelOrderCommand is a shortcut for a transition to cancelled.
func NewCancelOrderCommand(orderID kernel.UUID, notes string) (TransitionOrderStatusCommand, error) {
	if err := orderID.Validate(); err != nil {
		return TransitionOrderStatusCommand{}, err
	}
	return newTransitionOrderStatusCommand(orderID, order.StatusCancelled, notes), nil
}

// NewRefundOrderCommand is a shortcut for a transition to refunded.
func NewRefundOrderCommand(orderID kernel.UUID, notes string) (TransitionOrderStatusCommand, error) {
	if err := orderID.Validate(); err != nil {
		return TransitionOrderStatusCommand{}, err
	}
	return newTransitionOrderStatusCommand(orderID, order.StatusRefunded, notes), nil
}

func newTransitionOrderStatusCommand(
	orderID kernel.UUID,
	status order.Status,
	notes string,
) TransitionOrderStatusCommand {
	return TransitionOrderStatusCommand{
		orderID: orderID,
		status:  status,
		notes:   notes,
		guard:   guard.NewConstructorGuard(),
	}
}

func (c TransitionOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderStatusCommandIsNotConstructed)
}

func (c TransitionOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c TransitionOrderStatusCommand) Status() order.Status {
	return c.status
}

func (c TransitionOrderStatusCommand) Notes() string {
	return c.notes
}
