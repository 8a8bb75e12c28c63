package order_test

import (
	"testing"

	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaymentStatus(t *testing.T) {
	for _, p := range order.PaymentStatuses() {
		parsed, err := order.ParsePaymentStatus(p.String())

		require.NoError(t, err)
		assert.Equal(t, p, parsed)
	}

	for _, raw := range []string{"", "Paid", "completed", "unknown"} {
		parsed, err := order.ParsePaymentStatus(raw)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid, raw)
		assert.Equal(t, order.PaymentUnknown, parsed)
	}
}

func TestPaymentStatus_Validate(t *testing.T) {
	for _, p := range order.PaymentStatuses() {
		assert.NoError(t, p.Validate(), p.String())
	}

	require.ErrorIs(t, order.PaymentUnknown.Validate(), errs.ErrValueIsInvalid)
	assert.Equal(t, "unknown", order.PaymentStatus(17).String())
}

func TestPaymentStatus_TransitionTable(t *testing.T) {
	allowed := map[order.PaymentStatus]map[order.PaymentStatus]bool{
		order.PaymentPending:  {order.PaymentPaid: true, order.PaymentFailed: true},
		order.PaymentPaid:     {order.PaymentRefunded: true},
		order.PaymentFailed:   {order.PaymentPending: true, order.PaymentPaid: true},
		order.PaymentRefunded: {},
	}

	for _, from := range order.PaymentStatuses() {
		for _, to := range order.PaymentStatuses() {
			t.Run(from.String()+"->"+to.String(), func(t *testing.T) {
				expected := allowed[from][to]

				assert.Equal(t, expected, from.CanTransitionTo(to))

				err := from.ValidateTransition(to)
				if expected {
					require.NoError(t, err)
				} else {
					require.ErrorIs(t, err, order.ErrInvalidPaymentTransition)
				}
			})
		}
	}
}

func TestPaymentStatus_AllowedTransitionsReturnsCopy(t *testing.T) {
	edges := order.PaymentFailed.AllowedTransitions()
	edges[0] = order.PaymentRefunded

	assert.Equal(t, []order.PaymentStatus{order.PaymentPending, order.PaymentPaid}, order.PaymentFailed.AllowedTransitions())
	assert.Empty(t, order.PaymentRefunded.AllowedTransitions())
}
