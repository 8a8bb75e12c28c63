package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

const notesSeparator = "\n"

// Order is the aggregate root of the service. It owns its items and is the only
// place where status, payment status, money and timestamps change.
//
// Order follows these invariants:
//   - subtotal always equals the sum of its items' line totals
//   - status and payment status only move along the edges of their tables
//   - a delivered order has been paid
//   - each of paidAt, deliveredAt, cancelledAt and refundedAt is set at most once
//   - a failed operation leaves every field untouched
//
// Time is always passed in by the caller, which keeps the aggregate deterministic.
type Order struct {
	// id is the surrogate key used by storage and lookups
	id kernel.UUID

	// number is the human-facing unique order number
	number string

	// customer is the snapshot of the buyer taken at creation
	customer kernel.Customer

	// address is the delivery destination
	address kernel.DeliveryAddress

	status        Status
	paymentStatus PaymentStatus

	// items keep insertion order
	items []*Item

	// subtotal is derived from items and never set directly
	subtotal       kernel.Money
	deliveringCost kernel.Money

	notes string

	createdAt   time.Time
	updatedAt   time.Time
	paidAt      *time.Time
	deliveredAt *time.Time
	cancelledAt *time.Time
	refundedAt  *time.Time

	// version is the optimistic concurrency counter owned by the repository
	version int

	guard guard.ConstructorGuard
}

// NewOrder places a new order in pending status with a pending payment.
//
// Parameters:
//   - id: surrogate identifier
//   - number: order number; empty means generate one with NewOrderNumber
//   - customer, address: validated value objects
//   - items: lines of the order, may be empty
//   - deliveringCost: delivery charge, must not be negative
//   - now: creation instant, also used as updatedAt
//
// Identity, customer and address failures are joined and returned together.
// Item failures are reported as ErrInvalidItem, a bad delivery charge as ErrInvalidDeliveringCost.
//
// Example:
//
//	customer, _ := kernel.NewCustomer(1, "a@b.com", "Ann")
//	address, _ := kernel.NewDeliveryAddress("Lenina 1", "Moscow", "")
//	item, _ := order.NewItem(kernel.NewUUID(), 10, "Mug", 2, decimal.RequireFromString("10.00"))
//	o, err := order.NewOrder(kernel.NewUUID(), "", customer, address, []*order.Item{item}, decimal.RequireFromString("5.00"), time.Now())
func NewOrder(
	id kernel.UUID,
	number string,
	customer kernel.Customer,
	address kernel.DeliveryAddress,
	items []*Item,
	deliveringCost decimal.Decimal,
	now time.Time,
) (*Order, error) {
	if number == "" {
		number = NewOrderNumber()
	}

	o := &Order{
		status:        StatusPending,
		paymentStatus: PaymentPending,
		createdAt:     now,
		updatedAt:     now,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setCustomer(customer),
		o.setAddress(address),
	); err != nil {
		return nil, err
	}

	if err := o.setItems(items); err != nil {
		return nil, err
	}

	if err := o.setDeliveringCost(deliveringCost); err != nil {
		return nil, err
	}

	return o, nil
}

// State is the persisted form of an order, used by RestoreOrder.
// The subtotal is not part of it: it is recomputed from Items.
type State struct {
	ID             kernel.UUID
	Number         string
	Customer       kernel.Customer
	Address        kernel.DeliveryAddress
	Status         Status
	PaymentStatus  PaymentStatus
	Items          []*Item
	DeliveringCost decimal.Decimal
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	PaidAt         *time.Time
	DeliveredAt    *time.Time
	CancelledAt    *time.Time
	RefundedAt     *time.Time
	Version        int
}

// RestoreOrder rebuilds an order loaded from storage without replaying its history.
// Values are validated like in NewOrder; all failures are joined.
func RestoreOrder(state State) (*Order, error) {
	o := &Order{
		notes:       state.Notes,
		createdAt:   state.CreatedAt,
		updatedAt:   state.UpdatedAt,
		paidAt:      copyTime(state.PaidAt),
		deliveredAt: copyTime(state.DeliveredAt),
		cancelledAt: copyTime(state.CancelledAt),
		refundedAt:  copyTime(state.RefundedAt),
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(state.ID),
		o.setNumber(state.Number),
		o.setCustomer(state.Customer),
		o.setAddress(state.Address),
		o.setStatus(state.Status),
		o.setPaymentStatus(state.PaymentStatus),
		o.setItems(state.Items),
		o.setDeliveringCost(state.DeliveringCost),
		o.setVersion(state.Version),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate fails for an Order that bypassed the constructors.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the surrogate identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the order number.
func (o *Order) Number() string {
	return o.number
}

// Customer returns the customer snapshot.
func (o *Order) Customer() kernel.Customer {
	return o.customer
}

// Address returns the delivery address.
func (o *Order) Address() kernel.DeliveryAddress {
	return o.address
}

// Status returns the fulfilment status.
func (o *Order) Status() Status {
	return o.status
}

// PaymentStatus returns the payment status.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// Items returns the lines in insertion order. The slice is a copy.
func (o *Order) Items() []*Item {
	return slices.Clone(o.items)
}

// Subtotal returns the sum of line totals.
func (o *Order) Subtotal() kernel.Money {
	return o.subtotal
}

// DeliveringCost returns the delivery charge.
func (o *Order) DeliveringCost() kernel.Money {
	return o.deliveringCost
}

// TotalAmount returns subtotal + deliveringCost. It is never stored.
func (o *Order) TotalAmount() kernel.Money {
	return o.subtotal.Add(o.deliveringCost)
}

// Notes returns the free-form notes.
func (o *Order) Notes() string {
	return o.notes
}

// CreatedAt returns the creation instant.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the instant of the last successful mutation.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// PaidAt returns when the payment first became paid, or nil.
func (o *Order) PaidAt() *time.Time {
	return copyTime(o.paidAt)
}

// DeliveredAt returns when the order was delivered, or nil.
func (o *Order) DeliveredAt() *time.Time {
	return copyTime(o.deliveredAt)
}

// CancelledAt returns when the order was cancelled, or nil.
func (o *Order) CancelledAt() *time.Time {
	return copyTime(o.cancelledAt)
}

// RefundedAt returns when the order was refunded, or nil.
func (o *Order) RefundedAt() *time.Time {
	return copyTime(o.refundedAt)
}

// Version returns the optimistic concurrency counter of the loaded copy.
func (o *Order) Version() int {
	return o.version
}

// ReplaceItems swaps the whole item list and recomputes the subtotal.
//
// Only pending orders accept new items. Every item is checked before anything changes,
// so a single bad line leaves the previous list in place.
func (o *Order) ReplaceItems(items []*Item, now time.Time) error {
	if err := o.CheckEditable(NewFieldSet(FieldItems)); err != nil {
		return err
	}

	if err := validateItems(items); err != nil {
		return err
	}

	o.items = slices.Clone(items)
	o.subtotal = RecalculateSubtotal(o.items)
	o.updatedAt = now
	return nil
}

// UpdateFields applies a partial update to the settable fields.
//
// The patch is processed in four stages and nothing is written unless all of them pass:
//  1. every key must be settable; other keys fail with ErrReadOnlyField
//  2. the editability guard must accept the keys
//  3. every value must be valid
//  4. values are applied and updatedAt is touched
//
// Notes given here replace the existing notes. An empty patch changes nothing.
func (o *Order) UpdateFields(patch Patch, now time.Time) error {
	fields := patch.Fields()

	var readOnly []Field
	for _, f := range fields.Sorted() {
		if !IsSettable(f) {
			readOnly = append(readOnly, f)
		}
	}
	if len(readOnly) > 0 {
		return errs.NewRuleViolationError(ErrReadOnlyField, joinFields(readOnly))
	}

	if err := o.CheckEditable(fields); err != nil {
		return err
	}

	if len(patch) == 0 {
		return nil
	}

	address := o.address
	var err error
	if v, ok := patch[FieldAddress]; ok {
		if address, err = address.WithAddress(v); err != nil {
			return err
		}
	}
	if v, ok := patch[FieldCity]; ok {
		if address, err = address.WithCity(v); err != nil {
			return err
		}
	}
	if v, ok := patch[FieldCountry]; ok {
		if address, err = address.WithCountry(v); err != nil {
			return err
		}
	}

	deliveringCost := o.deliveringCost
	if v, ok := patch[FieldDeliveringCost]; ok {
		if deliveringCost, err = parseDeliveringCost(v); err != nil {
			return err
		}
	}

	notes := o.notes
	if v, ok := patch[FieldNotes]; ok {
		notes = strings.TrimSpace(v)
	}

	o.address = address
	o.deliveringCost = deliveringCost
	o.notes = notes
	o.updatedAt = now
	return nil
}

// TransitionStatus moves the order to next.
//
// Steps:
//  1. the edge current -> next must exist, otherwise ErrInvalidStatusTransition
//  2. delivering requires a paid order, otherwise ErrUnpaidDelivery
//  3. the payment status is adjusted through the coupling table
//  4. the status timestamp is set if it was never set
//  5. non-blank notes are appended on a new line
//  6. updatedAt is touched
//
// Steps 1 and 2 run before anything is written, so a rejected transition leaves
// the order untouched.
func (o *Order) TransitionStatus(next Status, notes string, now time.Time) error {
	if err := o.status.ValidateTransition(next); err != nil {
		return err
	}

	if next == StatusDelivered && o.paymentStatus != PaymentPaid {
		return errs.NewRuleViolationError(
			ErrUnpaidDelivery,
			fmt.Sprintf("payment status of order %s is %s", o.number, o.paymentStatus),
		)
	}

	o.paymentStatus = CoupledPaymentStatus(next, o.paymentStatus)
	o.status = next

	switch next {
	case StatusDelivered:
		o.deliveredAt = setOnce(o.deliveredAt, now)
	case StatusCancelled:
		o.cancelledAt = setOnce(o.cancelledAt, now)
	case StatusRefunded:
		o.refundedAt = setOnce(o.refundedAt, now)
	}

	o.notes = appendNotes(o.notes, notes)
	o.updatedAt = now
	return nil
}

// TransitionPaymentStatus moves the payment to next. Entering paid for the first time
// records paidAt.
func (o *Order) TransitionPaymentStatus(next PaymentStatus, now time.Time) error {
	if err := o.paymentStatus.ValidateTransition(next); err != nil {
		return err
	}

	o.paymentStatus = next
	if next == PaymentPaid {
		o.paidAt = setOnce(o.paidAt, now)
	}
	o.updatedAt = now
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	if err := validateOrderNumber(number); err != nil {
		return err
	}
	o.number = number
	return nil
}

func (o *Order) setCustomer(customer kernel.Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	o.customer = customer
	return nil
}

func (o *Order) setAddress(address kernel.DeliveryAddress) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.address = address
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setPaymentStatus(paymentStatus PaymentStatus) error {
	if err := paymentStatus.Validate(); err != nil {
		return err
	}
	o.paymentStatus = paymentStatus
	return nil
}

func (o *Order) setItems(items []*Item) error {
	if err := validateItems(items); err != nil {
		return err
	}
	o.items = slices.Clone(items)
	o.subtotal = RecalculateSubtotal(o.items)
	return nil
}

func (o *Order) setDeliveringCost(deliveringCost decimal.Decimal) error {
	cost, err := kernel.NewMoney(deliveringCost)
	if err != nil {
		return errs.NewRuleViolationErrorWithCause(ErrInvalidDeliveringCost, deliveringCost.String(), err)
	}
	o.deliveringCost = cost
	return nil
}

func (o *Order) setVersion(version int) error {
	if version < 0 {
		return errs.NewValueIsOutOfRangeError("version", version, 0, "unbounded")
	}
	o.version = version
	return nil
}

func validateItems(items []*Item) error {
	for idx, item := range items {
		if err := item.Validate(); err != nil {
			return errs.NewRuleViolationErrorWithCause(ErrInvalidItem, fmt.Sprintf("item #%d", idx+1), err)
		}
	}
	return nil
}

func parseDeliveringCost(v string) (kernel.Money, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil {
		return kernel.Money{}, errs.NewRuleViolationErrorWithCause(ErrInvalidDeliveringCost, v, err)
	}
	cost, err := kernel.NewMoney(amount)
	if err != nil {
		return kernel.Money{}, errs.NewRuleViolationErrorWithCause(ErrInvalidDeliveringCost, v, err)
	}
	return cost, nil
}

func appendNotes(existing, note string) string {
	note = strings.TrimSpace(note)
	if note == "" {
		return existing
	}
	if existing == "" {
		return note
	}
	return strings.TrimSpace(existing + notesSeparator + note)
}

func setOnce(current *time.Time, now time.Time) *time.Time {
	if current != nil {
		return current
	}
	return &now
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
