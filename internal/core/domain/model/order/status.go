package order

import (
	"fmt"
	"slices"

	"orders/internal/pkg/errs"
)

// Status is the fulfilment state of an order.
//
// State transitions:
//
//	pending ──> processing ──> delivered ──> refunded
//	   │             │
//	   └─────────────┴──> cancelled
//
// cancelled and refunded are final. delivered is final except for the refund edge.
type Status int

const (
	// StatusUnknown is the zero value and never valid.
	StatusUnknown Status = iota

	// StatusPending is the initial status. Everything about the order may still change.
	StatusPending

	// StatusProcessing means fulfilment has started; the delivery address is frozen.
	StatusProcessing

	// StatusDelivered means the goods reached the customer.
	StatusDelivered

	// StatusCancelled means the order was abandoned before delivery.
	StatusCancelled

	// StatusRefunded means a delivered order was returned and refunded.
	StatusRefunded
)

var statusNames = map[Status]string{
	StatusPending:    "pending",
	StatusProcessing: "processing",
	StatusDelivered:  "delivered",
	StatusCancelled:  "cancelled",
	StatusRefunded:   "refunded",
}

// statusTransitions is the status graph. It is built once and only read afterwards.
var statusTransitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusDelivered, StatusCancelled},
	StatusDelivered:  {StatusRefunded},
	StatusCancelled:  {},
	StatusRefunded:   {},
}

// Statuses lists every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{StatusPending, StatusProcessing, StatusDelivered, StatusCancelled, StatusRefunded}
}

// ParseStatus maps the canonical lowercase name to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects StatusUnknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the canonical lowercase name, or "unknown".
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// AllowedTransitions returns a copy of the statuses reachable from s in one step.
func (s Status) AllowedTransitions() []Status {
	return slices.Clone(statusTransitions[s])
}

// CanTransitionTo reports whether the edge s -> next exists.
// The same status is never reachable from itself.
func (s Status) CanTransitionTo(next Status) bool {
	return slices.Contains(statusTransitions[s], next)
}

// IsFinal reports whether no status is reachable from s.
func (s Status) IsFinal() bool {
	edges, ok := statusTransitions[s]
	return ok && len(edges) == 0
}

// IsLocked reports whether an order in this status rejects every field edit.
func (s Status) IsLocked() bool {
	return s == StatusDelivered || s == StatusCancelled || s == StatusRefunded
}

// ValidateTransition returns ErrInvalidStatusTransition unless s -> next is an edge of the graph.
func (s Status) ValidateTransition(next Status) error {
	if !s.CanTransitionTo(next) {
		return errs.NewRuleViolationError(
			ErrInvalidStatusTransition,
			fmt.Sprintf("from %s to %s", s, next),
		)
	}
	return nil
}
