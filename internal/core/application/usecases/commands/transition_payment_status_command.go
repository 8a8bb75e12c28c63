package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var ErrTransitionPaymentStatusCommandIsNotConstructed = errors.New(
	"TransitionPaymentStatusCommand must be created via NewTransitionPaymentStatusCommand constructor",
)

// TransitionPaymentStatusCommand moves the payment of an order along its own lifecycle.
type TransitionPaymentStatusCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	paymentStatus order.PaymentStatus

	guard guard.ConstructorGuard
}

// NewTransitionPaymentStatusCommand parses the target payment status name.
// An unknown name is reported as an invalid payment transition.
func NewTransitionPaymentStatusCommand(
	orderID kernel.UUID,
	paymentStatus string,
) (TransitionPaymentStatusCommand, error) {
	if err := orderID.Validate(); err != nil {
		return TransitionPaymentStatusCommand{}, err
	}

	next, err := order.ParsePaymentStatus(paymentStatus)
	if err != nil {
		return TransitionPaymentStatusCommand{}, errs.NewRuleViolationErrorWithCause(
			order.ErrInvalidPaymentTransition, "to "+paymentStatus, err,
		)
	}

	return TransitionPaymentStatusCommand{
		orderID:       orderID,
		paymentStatus: next,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c TransitionPaymentStatusCommand) Validate() error {
	return c.guard.Validate(ErrTransitionPaymentStatusCommandIsNotConstructed)
}

func (c TransitionPaymentStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c TransitionPaymentStatusCommand) PaymentStatus() order.PaymentStatus {
	return c.paymentStatus
}
