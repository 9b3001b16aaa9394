package commands

import (
	"context"

	"fulfillment/internal/core/application/notifications"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/core/ports"
)

// RequestReturnCommandHandler records a Return.
//
// The parent order row is locked for the whole transaction so two concurrent
// requests cannot both pass the returnable-quantity check against the same
// earlier returns.
type RequestReturnCommandHandler struct {
	uowFactory ReturnUoWFactory
	fanout     *notifications.FanOut
	clock      ports.Clock
}

func NewRequestReturnCommandHandler(
	uowFactory ReturnUoWFactory,
	fanout *notifications.FanOut,
	clock ports.Clock,
) RequestReturnCommandHandler {
	return RequestReturnCommandHandler{
		uowFactory: uowFactory,
		fanout:     fanout,
		clock:      clock,
	}
}

func (h RequestReturnCommandHandler) Handle(ctx context.Context, cmd RequestReturnCommand) (*returns.Return, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	actor := cmd.Actor()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = o.AuthorizeReturns(actor); err != nil {
		return nil, err
	}

	returnRepo := uow.ReturnRepository()
	previous, err := returnRepo.ListByOrder(ctx, o.ID())
	if err != nil {
		return nil, err
	}

	r, err := returns.Request(kernel.NewUUID(), o, actor.UserID(), cmd.Items(), previous, h.clock.Now())
	if err != nil {
		return nil, err
	}

	if err = returnRepo.Add(ctx, r); err != nil {
		return nil, err
	}

	batch := notifications.NewBatch()
	payload := returnPayload(r, o.Number())
	if err = h.fanout.NotifyCapable(ctx, batch, kernel.CapModerateReturns, notification.ReturnRequested, payload); err != nil {
		return nil, err
	}
	event := orderEvent(EventReturnRequested, o, actor.UserID())
	event.OccurredAt = r.CreatedAt()
	event.Attributes = map[string]string{"returnId": r.ID().String()}
	h.fanout.Publish(batch, event)

	if err = h.fanout.Persist(ctx, uow.NotificationRepository(), batch); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.fanout.Deliver(ctx, batch)
	return r, nil
}

func returnPayload(r *returns.Return, orderNumber string) notification.Payload {
	items := make([]map[string]any, 0, len(r.Items()))
	for _, item := range r.Items() {
		items = append(items, map[string]any{
			"productId": item.ProductID.String(),
			"quantity":  item.Quantity,
		})
	}
	return notification.Payload{
		"returnId":    r.ID().String(),
		"orderId":     r.OrderID().String(),
		"orderNumber": orderNumber,
		"status":      r.Status().String(),
		"items":       items,
	}
}
