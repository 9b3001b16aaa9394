package commands

import (
	"context"

	"fulfillment/internal/core/application/notifications"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// FinalizeReturnCommandHandler moves delivered to returned for the owning
// store or a dispatcher. Stock is not touched here; it follows the individual
// Return records as they complete.
type FinalizeReturnCommandHandler struct {
	uowFactory OrderingUoWFactory
	fanout     *notifications.FanOut
	clock      ports.Clock
}

func NewFinalizeReturnCommandHandler(
	uowFactory OrderingUoWFactory,
	fanout *notifications.FanOut,
	clock ports.Clock,
) FinalizeReturnCommandHandler {
	return FinalizeReturnCommandHandler{
		uowFactory: uowFactory,
		fanout:     fanout,
		clock:      clock,
	}
}

func (h FinalizeReturnCommandHandler) Handle(ctx context.Context, cmd FinalizeReturnCommand) (*order.Order, error) {
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

	if err = o.AuthorizeReturns(actor); err != nil {
		return nil, err
	}

	if err = o.ChangeStatus(order.Returned, actor.UserID(), h.clock.Now()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	batch := notifications.NewBatch()
	if err = announceStatusChange(ctx, h.fanout, batch, o, actor.UserID()); err != nil {
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
