package commands

import (
	"context"

	"fulfillment/internal/core/application/notifications"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/core/ports"
)

// UpdateReturnStatusCommandHandler applies a Return transition. Completing a
// Return puts every returned unit back into stock in the same transaction.
// The store is notified with return_completed on completion and
// return_status_changed otherwise.
type UpdateReturnStatusCommandHandler struct {
	uowFactory ReturnUoWFactory
	fanout     *notifications.FanOut
	clock      ports.Clock
}

func NewUpdateReturnStatusCommandHandler(
	uowFactory ReturnUoWFactory,
	fanout *notifications.FanOut,
	clock ports.Clock,
) UpdateReturnStatusCommandHandler {
	return UpdateReturnStatusCommandHandler{
		uowFactory: uowFactory,
		fanout:     fanout,
		clock:      clock,
	}
}

func (h UpdateReturnStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateReturnStatusCommand,
) (*returns.Return, error) {
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

	returnRepo := uow.ReturnRepository()
	located, err := returnRepo.Get(ctx, cmd.ReturnID())
	if err != nil {
		return nil, err
	}

	// Order first, then return: the same lock order as RequestReturn.
	o, err := uow.OrderRepository().GetForUpdate(ctx, located.OrderID())
	if err != nil {
		return nil, err
	}
	r, err := returnRepo.GetForUpdate(ctx, cmd.ReturnID())
	if err != nil {
		return nil, err
	}

	from := r.Status()
	if err = r.ChangeStatus(actor, cmd.Target(), h.clock.Now()); err != nil {
		return nil, err
	}
	if err = returnRepo.Update(ctx, r, from); err != nil {
		return nil, err
	}

	if r.Status() == returns.Completed {
		productRepo := uow.ProductRepository()
		for _, item := range r.Items() {
			if err = productRepo.Adjust(ctx, item.ProductID, item.Quantity); err != nil {
				return nil, err
			}
		}
	}

	kind := notification.ReturnStatusChanged
	if r.Status() == returns.Completed {
		kind = notification.ReturnCompleted
	}

	batch := notifications.NewBatch()
	if err = h.fanout.Notify(batch, kind, returnPayload(r, o.Number()), r.StoreID()); err != nil {
		return nil, err
	}
	event := orderEvent(EventReturnChanged, o, actor.UserID())
	event.OccurredAt = r.UpdatedAt()
	event.Attributes = map[string]string{
		"returnId":     r.ID().String(),
		"returnStatus": r.Status().String(),
	}
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
