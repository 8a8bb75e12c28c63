package commands_test

import (
	"testing"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewUpdateOrderFieldsCommand(t *testing.T) {
	id := kernel.NewUUID()
	fields := map[string]string{"address": "Tverskaya 5"}

	cmd, err := commands.NewUpdateOrderFieldsCommand(id, fields)
	require.NoError(t, err)
	assert.Equal(t, id, cmd.OrderID())
	assert.Equal(t, order.Patch{order.FieldAddress: "Tverskaya 5"}, cmd.Patch())

	// the command keeps its own copy
	fields["address"] = "changed"
	assert.Equal(t, "Tverskaya 5", cmd.Patch()[order.FieldAddress])

	_, err = commands.NewUpdateOrderFieldsCommand(id, nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewUpdateOrderFieldsCommand(kernel.UUID{}, fields)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestUpdateOrderFieldsCommandHandler_Handle_Success(t *testing.T) {
	// Given
	stored := storedOrder(t, order.StatusPending, order.PaymentPending)
	cmd, err := commands.NewUpdateOrderFieldsCommand(stored.ID(), map[string]string{
		"city":           "Kazan",
		"deliveringCost": "4.00",
		"notes":          "  call first  ",
	})
	require.NoError(t, err)

	m := newMutationMocks()
	m.expectCommitted(stored)
	h := commands.NewUpdateOrderFieldsCommandHandler(m.factory, m.locker, nil, nil)

	// When
	err = h.Handle(t.Context(), cmd)

	// Then
	require.NoError(t, err)
	assert.Equal(t, "Kazan", stored.Address().City())
	assert.Equal(t, "Lenina 1", stored.Address().Address())
	assert.Equal(t, "4.00", stored.DeliveringCost().String())
	assert.Equal(t, "14.00", stored.TotalAmount().String())
	assert.Equal(t, "call first", stored.Notes())
	m.assertExpectations(t)
}

func TestUpdateOrderFieldsCommandHandler_Handle_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		status  order.Status
		payment order.PaymentStatus
		fields  map[string]string
		wantErr error
	}{
		{"read-only field", order.StatusPending, order.PaymentPending, map[string]string{"status": "delivered"}, order.ErrReadOnlyField},
		{"final order", order.StatusDelivered, order.PaymentPaid, map[string]string{"notes": "x"}, order.ErrNotEditable},
		{"processing address", order.StatusProcessing, order.PaymentPaid, map[string]string{"address": "x"}, order.ErrRestrictedField},
		{"bad cost", order.StatusPending, order.PaymentPending, map[string]string{"deliveringCost": "-1"}, order.ErrInvalidDeliveringCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stored := storedOrder(t, tt.status, tt.payment)
			cmd, err := commands.NewUpdateOrderFieldsCommand(stored.ID(), tt.fields)
			require.NoError(t, err)

			m := newMutationMocks()
			m.expectRejected(stored)
			h := commands.NewUpdateOrderFieldsCommandHandler(m.factory, m.locker, nil, nil)

			err = h.Handle(t.Context(), cmd)

			require.ErrorIs(t, err, tt.wantErr)
			assert.True(t, errs.IsRuleViolation(err))
			m.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			m.assertExpectations(t)
		})
	}
}
