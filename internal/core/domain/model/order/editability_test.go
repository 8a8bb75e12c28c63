package order_test

import (
	"testing"

	"orders/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrder_CheckEditable(t *testing.T) {
	tests := []struct {
		status   order.Status
		fields   order.FieldSet
		expected error
	}{
		{order.StatusPending, order.NewFieldSet(order.FieldAddress, order.FieldCity, order.FieldCountry), nil},
		{order.StatusPending, order.NewFieldSet(order.FieldItems), nil},
		{order.StatusPending, order.NewFieldSet(order.FieldDeliveringCost, order.FieldNotes), nil},
		{order.StatusPending, order.NewFieldSet(), nil},

		{order.StatusProcessing, order.NewFieldSet(order.FieldDeliveringCost), nil},
		{order.StatusProcessing, order.NewFieldSet(order.FieldNotes), nil},
		{order.StatusProcessing, order.NewFieldSet(order.FieldAddress), order.ErrRestrictedField},
		{order.StatusProcessing, order.NewFieldSet(order.FieldCity), order.ErrRestrictedField},
		{order.StatusProcessing, order.NewFieldSet(order.FieldCountry, order.FieldNotes), order.ErrRestrictedField},
		{order.StatusProcessing, order.NewFieldSet(order.FieldItems), order.ErrItemsLocked},
		{order.StatusProcessing, order.NewFieldSet(order.FieldItems, order.FieldCity), order.ErrRestrictedField},

		{order.StatusDelivered, order.NewFieldSet(order.FieldNotes), order.ErrNotEditable},
		{order.StatusDelivered, order.NewFieldSet(), order.ErrNotEditable},
		{order.StatusCancelled, order.NewFieldSet(order.FieldDeliveringCost), order.ErrNotEditable},
		{order.StatusRefunded, order.NewFieldSet(order.FieldItems), order.ErrNotEditable},
	}

	for _, tt := range tests {
		t.Run(tt.status.String()+"/"+joinFieldNames(tt.fields), func(t *testing.T) {
			o := restoreOrder(t, tt.status, order.PaymentPaid)

			err := o.CheckEditable(tt.fields)

			if tt.expected == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestOrder_CheckEditable_HasNoSideEffects(t *testing.T) {
	o := restoreOrder(t, order.StatusProcessing, order.PaymentPaid)
	updatedAt := o.UpdatedAt()

	_ = o.CheckEditable(order.NewFieldSet(order.FieldAddress))

	assert.Equal(t, order.StatusProcessing, o.Status())
	assert.Equal(t, updatedAt, o.UpdatedAt())
}

func joinFieldNames(set order.FieldSet) string {
	name := ""
	for _, f := range set.Sorted() {
		if name != "" {
			name += "+"
		}
		name += string(f)
	}
	if name == "" {
		return "none"
	}
	return name
}
