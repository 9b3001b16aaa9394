package notification_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	userID := kernel.NewUUID()
	payload := notification.Payload{"orderNumber": "ORD-2025-001"}

	n, err := notification.New(kernel.NewUUID(), userID, notification.OrderConfirmation, payload, time.Now())
	require.NoError(t, err)
	require.NoError(t, n.Validate())
	assert.False(t, n.IsRead())
	assert.Equal(t, "order_confirmation", n.Type().String())

	payload["orderNumber"] = "mutated"
	assert.Equal(t, "ORD-2025-001", n.Payload()["orderNumber"])

	_, err = notification.New(kernel.NewUUID(), userID, notification.Type("promo"), nil, time.Now())
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestMarkRead(t *testing.T) {
	userID := kernel.NewUUID()
	n, err := notification.New(kernel.NewUUID(), userID, notification.NewOrder, nil, time.Now())
	require.NoError(t, err)

	require.ErrorIs(t, n.MarkRead(kernel.NewUUID()), errs.ErrForbidden)
	assert.False(t, n.IsRead())

	require.NoError(t, n.MarkRead(userID))
	assert.True(t, n.IsRead())
}
