package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/notification"
)

// MarkNotificationReadCommandHandler toggles the read flag. Only the
// recipient may do so.
type MarkNotificationReadCommandHandler struct {
	uowFactory NotificationUoWFactory
}

func NewMarkNotificationReadCommandHandler(uowFactory NotificationUoWFactory) MarkNotificationReadCommandHandler {
	return MarkNotificationReadCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h MarkNotificationReadCommandHandler) Handle(
	ctx context.Context,
	cmd MarkNotificationReadCommand,
) (*notification.Notification, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.NotificationRepository()
	n, err := repo.Get(ctx, cmd.NotificationID())
	if err != nil {
		return nil, err
	}

	if err = n.MarkRead(cmd.Actor().UserID()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, n); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return n, nil
}

// MarkAllNotificationsReadCommandHandler clears the caller's unread inbox and
// reports how many notifications changed.
type MarkAllNotificationsReadCommandHandler struct {
	uowFactory NotificationUoWFactory
}

func NewMarkAllNotificationsReadCommandHandler(uowFactory NotificationUoWFactory) MarkAllNotificationsReadCommandHandler {
	return MarkAllNotificationsReadCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h MarkAllNotificationsReadCommandHandler) Handle(ctx context.Context, cmd MarkAllNotificationsReadCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	changed, err := uow.NotificationRepository().MarkAllRead(ctx, cmd.Actor().UserID())
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return changed, nil
}
