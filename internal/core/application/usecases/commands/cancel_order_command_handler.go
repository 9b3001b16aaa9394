package commands

import (
	"context"

	"fulfillment/internal/core/application/notifications"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// CancelOrderCommandHandler cancels an order and restocks its lines in the
// same transaction. The store, the assigned agent and every dispatcher are
// notified.
type CancelOrderCommandHandler struct {
	uowFactory OrderingUoWFactory
	fanout     *notifications.FanOut
	clock      ports.Clock
}

func NewCancelOrderCommandHandler(
	uowFactory OrderingUoWFactory,
	fanout *notifications.FanOut,
	clock ports.Clock,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		fanout:     fanout,
		clock:      clock,
	}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
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

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = o.AuthorizeCancel(actor); err != nil {
		return nil, err
	}

	if err = o.Cancel(cmd.Reason(), actor.UserID(), h.clock.Now()); err != nil {
		return nil, err
	}

	if err = restock(ctx, uow.ProductRepository(), o.Items()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	batch := notifications.NewBatch()
	if err = announceCancellation(ctx, h.fanout, batch, o, actor.UserID()); err != nil {
		return nil, err
	}
	if err = h.fanout.Persist(ctx, uow.NotificationRepository(), batch); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.fanout.Deliver(ctx, batch)
	return o, nil
}
