package commands

import (
	"context"

	"fulfillment/internal/core/application/notifications"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// SoftDeleteOrderCommandHandler flags an order as deleted. The row stays for
// audit and keeps its invoice; reads treat it as missing afterwards.
type SoftDeleteOrderCommandHandler struct {
	uowFactory OrderingUoWFactory
	fanout     *notifications.FanOut
	clock      ports.Clock
}

func NewSoftDeleteOrderCommandHandler(
	uowFactory OrderingUoWFactory,
	fanout *notifications.FanOut,
	clock ports.Clock,
) SoftDeleteOrderCommandHandler {
	return SoftDeleteOrderCommandHandler{
		uowFactory: uowFactory,
		fanout:     fanout,
		clock:      clock,
	}
}

func (h SoftDeleteOrderCommandHandler) Handle(ctx context.Context, cmd SoftDeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	actor := cmd.Actor()
	if !actor.Can(kernel.CapDispatchOrders) {
		return errs.NewForbiddenError("only admins can delete orders")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	o.SoftDelete(h.clock.Now())
	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	batch := notifications.NewBatch()
	h.fanout.Publish(batch, orderEvent(EventOrderDeleted, o, actor.UserID()))
	h.fanout.Deliver(ctx, batch)
	return nil
}
