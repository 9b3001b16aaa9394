package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
)

type NotificationRepository interface {
	// Add persists notifications created by one lifecycle event.
	Add(ctx context.Context, notifications ...*notification.Notification) error

	Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error)

	// Update persists the read flag.
	Update(ctx context.Context, n *notification.Notification) error

	// MarkAllRead flags every unread notification of userID and reports how many changed.
	MarkAllRead(ctx context.Context, userID kernel.UUID) (int, error)
}
