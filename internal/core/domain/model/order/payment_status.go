package order

import (
	"fmt"
	"slices"

	"orders/internal/pkg/errs"
)

// PaymentStatus is the settlement state of an order's payment.
//
// State transitions:
//
//	pending ──> paid ──> refunded
//	   │  ▲       ▲
//	   ▼  │       │
//	  failed ─────┘
//
// refunded is final; failed is recoverable.
type PaymentStatus int

const (
	// PaymentUnknown is the zero value and never valid.
	PaymentUnknown PaymentStatus = iota

	// PaymentPending is the initial payment status.
	PaymentPending

	// PaymentPaid means the payment settled.
	PaymentPaid

	// PaymentFailed means the last payment attempt failed.
	PaymentFailed

	// PaymentRefunded means the money went back to the customer.
	PaymentRefunded
)

var paymentStatusNames = map[PaymentStatus]string{
	PaymentPending:  "pending",
	PaymentPaid:     "paid",
	PaymentFailed:   "failed",
	PaymentRefunded: "refunded",
}

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending:  {PaymentPaid, PaymentFailed},
	PaymentPaid:     {PaymentRefunded},
	PaymentFailed:   {PaymentPending, PaymentPaid},
	PaymentRefunded: {},
}

// PaymentStatuses lists every valid payment status.
func PaymentStatuses() []PaymentStatus {
	return []PaymentStatus{PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded}
}

// ParsePaymentStatus maps the canonical lowercase name to a PaymentStatus.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	for status, name := range paymentStatusNames {
		if name == s {
			return status, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause(
		"paymentStatus",
		fmt.Errorf("%q is not a valid payment status", s),
	)
}

// Validate rejects PaymentUnknown and out-of-range values.
func (p PaymentStatus) Validate() error {
	if _, ok := paymentStatusNames[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment status is invalid",
			fmt.Errorf("%d is not a valid payment status", p),
		)
	}
	return nil
}

// String returns the canonical lowercase name, or "unknown".
func (p PaymentStatus) String() string {
	if name, ok := paymentStatusNames[p]; ok {
		return name
	}
	return "unknown"
}

// AllowedTransitions returns a copy of the payment statuses reachable from p in one step.
func (p PaymentStatus) AllowedTransitions() []PaymentStatus {
	return slices.Clone(paymentTransitions[p])
}

// CanTransitionTo reports whether the edge p -> next exists.
func (p PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	return slices.Contains(paymentTransitions[p], next)
}

// ValidateTransition returns ErrInvalidPaymentTransition unless p -> next is an edge of the graph.
func (p PaymentStatus) ValidateTransition(next PaymentStatus) error {
	if !p.CanTransitionTo(next) {
		return errs.NewRuleViolationError(
			ErrInvalidPaymentTransition,
			fmt.Sprintf("from %s to %s", p, next),
		)
	}
	return nil
}
