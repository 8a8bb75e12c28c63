package order

import (
	"slices"
	"strings"
)

// Field names an order attribute as it is addressed by callers patching an order.
type Field string

// Settable fields.
const (
	FieldAddress        Field = "address"
	FieldCity           Field = "city"
	FieldCountry        Field = "country"
	FieldDeliveringCost Field = "deliveringCost"
	FieldNotes          Field = "notes"
)

// Fields owned by dedicated operations or derived by the aggregate.
const (
	FieldID            Field = "id"
	FieldOrderNumber   Field = "orderNumber"
	FieldCustomerID    Field = "customerId"
	FieldCustomerEmail Field = "customerEmail"
	FieldCustomerName  Field = "customerName"
	FieldItems         Field = "items"
	FieldStatus        Field = "status"
	FieldPaymentStatus Field = "paymentStatus"
	FieldSubtotal      Field = "subtotal"
	FieldCreatedAt     Field = "createdAt"
	FieldUpdatedAt     Field = "updatedAt"
	FieldPaidAt        Field = "paidAt"
	FieldDeliveredAt   Field = "deliveredAt"
	FieldCancelledAt   Field = "cancelledAt"
	FieldRefundedAt    Field = "refundedAt"
)

var (
	settableFields = NewFieldSet(FieldAddress, FieldCity, FieldCountry, FieldDeliveringCost, FieldNotes)
	addressFields  = NewFieldSet(FieldAddress, FieldCity, FieldCountry)
)

// FieldSet is a set of fields touched by one mutation.
type FieldSet map[Field]struct{}

// NewFieldSet builds a set from the given fields.
func NewFieldSet(fields ...Field) FieldSet {
	set := make(FieldSet, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// Has reports whether f is in the set.
func (s FieldSet) Has(f Field) bool {
	_, ok := s[f]
	return ok
}

// Intersects reports whether the sets share at least one field.
func (s FieldSet) Intersects(other FieldSet) bool {
	for f := range s {
		if other.Has(f) {
			return true
		}
	}
	return false
}

// Sorted returns the fields in lexical order.
func (s FieldSet) Sorted() []Field {
	fields := make([]Field, 0, len(s))
	for f := range s {
		fields = append(fields, f)
	}
	slices.Sort(fields)
	return fields
}

// IsSettable reports whether f may be changed through UpdateFields.
func IsSettable(f Field) bool {
	return settableFields.Has(f)
}

// Patch carries new textual values keyed by field. Values are parsed and validated
// by UpdateFields; deliveringCost is a decimal string such as "7.50".
type Patch map[Field]string

// Fields returns the keys of the patch as a set.
func (p Patch) Fields() FieldSet {
	set := make(FieldSet, len(p))
	for f := range p {
		set[f] = struct{}{}
	}
	return set
}

func joinFields(fields []Field) string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
