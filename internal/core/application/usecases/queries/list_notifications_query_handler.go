package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/ports"
)

type ListNotificationsQueryHandler struct {
	notifications ports.NotificationReader
}

func NewListNotificationsQueryHandler(notifications ports.NotificationReader) ListNotificationsQueryHandler {
	return ListNotificationsQueryHandler{notifications: notifications}
}

func (h ListNotificationsQueryHandler) Handle(
	ctx context.Context,
	query ListNotificationsQuery,
) ([]*notification.Notification, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.notifications.ListNotifications(ctx, query.Actor().UserID(), query.UnreadOnly(), query.Page())
}
