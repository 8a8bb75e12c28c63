package order

import "errors"

// Rule sentinels. Operations return them wrapped in *errs.RuleViolationError;
// match with errors.Is.
var (
	ErrInvalidItem              = errors.New("invalid order item")
	ErrInvalidDeliveringCost    = errors.New("invalid delivering cost")
	ErrNotEditable              = errors.New("order is not editable")
	ErrRestrictedField          = errors.New("field cannot be changed in current status")
	ErrItemsLocked              = errors.New("order items are locked")
	ErrReadOnlyField            = errors.New("field is read-only")
	ErrInvalidStatusTransition  = errors.New("invalid status transition")
	ErrInvalidPaymentTransition = errors.New("invalid payment status transition")
	ErrUnpaidDelivery           = errors.New("cannot deliver unpaid order")
)

// ErrOrderIsNotConstructed is returned when an Order was not created through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
