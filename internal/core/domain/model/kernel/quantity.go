package kernel

import (
	"math"

	"orders/internal/pkg/errs"
)

// MinQuantity is the smallest number of units an order line may hold.
const MinQuantity = 1

// Quantity is the number of units of one product on an order line.
type Quantity struct {
	value int
}

// NewQuantity returns an error unless value >= MinQuantity.
func NewQuantity(value int) (Quantity, error) {
	if value < MinQuantity {
		return Quantity{}, errs.NewValueIsOutOfRangeError("quantity", value, MinQuantity, math.MaxInt32)
	}
	return Quantity{value: value}, nil
}

// Int returns the raw count.
func (q Quantity) Int() int {
	return q.value
}

// Validate rejects the zero value.
func (q Quantity) Validate() error {
	if q.value < MinQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", q.value, MinQuantity, math.MaxInt32)
	}
	return nil
}
