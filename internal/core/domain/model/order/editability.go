package order

import (
	"fmt"

	"orders/internal/pkg/errs"
)

// CheckEditable decides whether the given fields may change in the order's current status.
//
// Checks run in this order and the first failure wins:
//   - delivered, cancelled and refunded orders reject every field (ErrNotEditable)
//   - processing orders reject address, city and country (ErrRestrictedField)
//   - items change only while pending (ErrItemsLocked)
//
// The check has no side effects.
func (o *Order) CheckEditable(fields FieldSet) error {
	if o.status.IsLocked() {
		return errs.NewRuleViolationError(
			ErrNotEditable,
			fmt.Sprintf("order %s is %s", o.number, o.status),
		)
	}

	if o.status == StatusProcessing && fields.Intersects(addressFields) {
		restricted := make([]Field, 0, len(addressFields))
		for _, f := range fields.Sorted() {
			if addressFields.Has(f) {
				restricted = append(restricted, f)
			}
		}
		return errs.NewRuleViolationError(
			ErrRestrictedField,
			fmt.Sprintf("%s cannot be changed while order is %s", joinFields(restricted), o.status),
		)
	}

	if fields.Has(FieldItems) && o.status != StatusPending {
		return errs.NewRuleViolationError(
			ErrItemsLocked,
			fmt.Sprintf("items can only be changed while order is %s, order is %s", StatusPending, o.status),
		)
	}

	return nil
}
