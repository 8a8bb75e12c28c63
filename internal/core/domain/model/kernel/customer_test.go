package kernel_test

import (
	"testing"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	t.Run("should build a snapshot", func(t *testing.T) {
		c, err := kernel.NewCustomer(7, "ivan@example.com", " Ivan Petrov ")

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.Equal(t, int64(7), c.ID())
		assert.Equal(t, "ivan@example.com", c.Email())
		assert.Equal(t, "Ivan Petrov", c.Name())
	})

	testCases := []struct {
		name    string
		id      int64
		email   string
		cname   string
		wantErr error
		wantMsg string
	}{
		{"zero id", 0, "a@b.io", "A", errs.ErrValueIsInvalid, "customerId"},
		{"bad email", 1, "not-an-email", "A", errs.ErrValueIsInvalid, "customerEmail"},
		{"empty email", 1, "", "A", errs.ErrValueIsInvalid, "customerEmail"},
		{"empty name", 1, "a@b.io", "  ", errs.ErrValueIsRequired, "customerName"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := kernel.NewCustomer(tc.id, tc.email, tc.cname)

			require.ErrorIs(t, err, tc.wantErr)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}

	t.Run("zero value does not validate", func(t *testing.T) {
		var c kernel.Customer

		require.ErrorIs(t, c.Validate(), errs.ErrValueIsRequired)
	})
}
