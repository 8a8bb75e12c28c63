package errs

import (
	"errors"
	"fmt"
)

// ErrConcurrentModification is returned when a writer works on a stale copy of an aggregate
// or cannot obtain exclusive access to it.
var ErrConcurrentModification = errors.New("concurrent modification")

// RuleViolationError reports a business rule rejected by the domain.
//
// Rule is the sentinel that classifies the failure and is what errors.Is matches on.
// Detail is a human-readable explanation intended for the transport layer.
//
// Example:
//
//	err := errs.NewRuleViolationError(order.ErrUnpaidDelivery, "payment status is pending")
//	errors.Is(err, order.ErrUnpaidDelivery) // true
//
//	var rv *errs.RuleViolationError
//	if errors.As(err, &rv) {
//	    fmt.Println(rv.Detail) // "payment status is pending"
//	}
type RuleViolationError struct {
	Rule   error
	Detail string
	Cause  error
}

// NewRuleViolationError creates a RuleViolationError without a cause.
func NewRuleViolationError(rule error, detail string) *RuleViolationError {
	return &RuleViolationError{Rule: rule, Detail: detail}
}

// NewRuleViolationErrorWithCause creates a RuleViolationError carrying the underlying cause.
func NewRuleViolationErrorWithCause(rule error, detail string, cause error) *RuleViolationError {
	return &RuleViolationError{Rule: rule, Detail: detail, Cause: cause}
}

func (e *RuleViolationError) Error() string {
	msg := e.Rule.Error()
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, sanitize(e.Detail))
	}
	return withCause(msg, e.Cause)
}

func (e *RuleViolationError) Unwrap() error {
	return e.Rule
}

// NewConcurrentModificationError reports a stale write against the aggregate identified by id.
func NewConcurrentModificationError(paramName string, id any) *RuleViolationError {
	return NewRuleViolationError(
		ErrConcurrentModification,
		fmt.Sprintf("%s %v was modified by another writer", paramName, id),
	)
}

// IsRuleViolation reports whether err is a recoverable validation outcome
// (a rule violation, an invalid or missing value) as opposed to an infrastructure failure.
// Transport layers use it to choose between a 4xx and a 5xx response.
func IsRuleViolation(err error) bool {
	var rv *RuleViolationError
	return errors.As(err, &rv) ||
		errors.Is(err, ErrValueIsInvalid) ||
		errors.Is(err, ErrValueIsOutOfRange) ||
		errors.Is(err, ErrValueIsRequired)
}
