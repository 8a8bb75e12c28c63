package order

import (
	"fmt"
	"strings"

	"orders/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	orderNumberPrefix    = "ORD-"
	orderNumberHexDigits = 8

	// MaxOrderNumberLength bounds caller-supplied order numbers.
	MaxOrderNumberLength = 50
)

// NewOrderNumber returns "ORD-" followed by the first eight hex digits of a random UUID, uppercased.
// Uniqueness is enforced by storage, not here.
func NewOrderNumber() string {
	return orderNumberPrefix + strings.ToUpper(uuid.NewString()[:orderNumberHexDigits])
}

func validateOrderNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	if len(number) > MaxOrderNumberLength {
		return errs.NewValueIsInvalidErrorWithCause(
			"orderNumber",
			fmt.Errorf("length %d exceeds %d", len(number), MaxOrderNumberLength),
		)
	}
	return nil
}
