package order_test

import (
	"fmt"
	"testing"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStatuses = []order.Status{
	order.Pending,
	order.WaitingForDelivery,
	order.Delivering,
	order.Delivered,
	order.Returned,
	order.Cancelled,
}

func TestStatus_Validate(t *testing.T) {
	for _, status := range allStatuses {
		t.Run(fmt.Sprintf("should validate %s", status), func(t *testing.T) {
			require.NoError(t, status.Validate())
		})
	}

	t.Run("should reject Unknown and out of range values", func(t *testing.T) {
		require.Error(t, order.Unknown.Validate())
		require.Error(t, order.Status(99).Validate())
		assert.Equal(t, "unknown", order.Status(99).String())
	})
}

func TestParseStatus(t *testing.T) {
	for _, status := range allStatuses {
		parsed, err := order.ParseStatus(status.String())
		require.NoError(t, err)
		assert.Equal(t, status, parsed)
	}

	_, err := order.ParseStatus("shipped")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_TransitionTable(t *testing.T) {
	allowed := map[order.Status][]order.Status{
		order.Pending:            {order.WaitingForDelivery, order.Cancelled},
		order.WaitingForDelivery: {order.Delivering, order.Cancelled},
		order.Delivering:         {order.Delivered, order.Cancelled},
		order.Delivered:          {order.Returned},
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := false
			for _, next := range allowed[from] {
				if next == to {
					want = true
				}
			}

			t.Run(fmt.Sprintf("%s to %s", from, to), func(t *testing.T) {
				got, err := from.TransitionTo(to)
				if want {
					require.NoError(t, err)
					assert.Equal(t, to, got)
					return
				}

				require.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrInvalidTransition)
				assert.Equal(t, from, got)
				assert.Contains(t, err.Error(), from.String())
				assert.Contains(t, err.Error(), to.String())
			})
		}
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Cancelled.IsTerminal())
	assert.True(t, order.Returned.IsTerminal())
	assert.False(t, order.Delivered.IsTerminal())
	assert.False(t, order.Pending.IsTerminal())
}

func TestStatus_AllowsAssignment(t *testing.T) {
	assert.True(t, order.Pending.AllowsAssignment())
	assert.True(t, order.WaitingForDelivery.AllowsAssignment())
	assert.True(t, order.Delivering.AllowsAssignment())
	assert.False(t, order.Delivered.AllowsAssignment())
	assert.False(t, order.Cancelled.AllowsAssignment())
	assert.False(t, order.Returned.AllowsAssignment())
}
