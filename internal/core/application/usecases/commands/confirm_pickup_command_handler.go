package commands

import (
	"context"

	"fulfillment/internal/core/application/notifications"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// ConfirmPickupCommandHandler moves waiting_for_delivery to delivering on
// behalf of the assigned agent.
type ConfirmPickupCommandHandler struct {
	uowFactory OrderingUoWFactory
	fanout     *notifications.FanOut
	clock      ports.Clock
}

func NewConfirmPickupCommandHandler(
	uowFactory OrderingUoWFactory,
	fanout *notifications.FanOut,
	clock ports.Clock,
) ConfirmPickupCommandHandler {
	return ConfirmPickupCommandHandler{
		uowFactory: uowFactory,
		fanout:     fanout,
		clock:      clock,
	}
}

func (h ConfirmPickupCommandHandler) Handle(ctx context.Context, cmd ConfirmPickupCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	actor := cmd.Actor()
	if !actor.Can(kernel.CapDeliverOrders) {
		return nil, errs.NewForbiddenError("only delivery agents can confirm pickup")
	}

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

	if err = o.ConfirmPickup(actor.UserID(), h.clock.Now()); err != nil {
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
