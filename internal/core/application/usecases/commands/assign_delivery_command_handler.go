package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/core/application/notifications"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// AssignDeliveryCommandHandler sets the delivery agent of an order.
//
// Assignment is an explicit override: it forces waiting_for_delivery from
// pending, waiting_for_delivery or delivering, so a dispatcher can reassign
// an order already on the road. Finished orders reject it.
type AssignDeliveryCommandHandler struct {
	uowFactory OrderingUoWFactory
	users      ports.UserDirectory
	fanout     *notifications.FanOut
	clock      ports.Clock
}

func NewAssignDeliveryCommandHandler(
	uowFactory OrderingUoWFactory,
	users ports.UserDirectory,
	fanout *notifications.FanOut,
	clock ports.Clock,
) AssignDeliveryCommandHandler {
	return AssignDeliveryCommandHandler{
		uowFactory: uowFactory,
		users:      users,
		fanout:     fanout,
		clock:      clock,
	}
}

func (h AssignDeliveryCommandHandler) Handle(ctx context.Context, cmd AssignDeliveryCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	actor := cmd.Actor()
	if !actor.Can(kernel.CapDispatchOrders) {
		return nil, errs.NewForbiddenError("only admins can assign delivery agents")
	}

	agent, err := h.users.Get(ctx, cmd.AgentID())
	if err != nil {
		return nil, err
	}
	if !agent.Role.Can(kernel.CapDeliverOrders) || !agent.Active {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"agentId",
			fmt.Errorf("user %s is not an active delivery agent", agent.ID),
		)
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
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

	if err = o.AssignDelivery(agent.ID, actor.UserID(), h.clock.Now()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	batch := notifications.NewBatch()
	if err = h.fanout.Notify(batch, notification.OrderAssigned, orderPayload(o), agent.ID); err != nil {
		return nil, err
	}
	event := orderEvent(EventOrderAssigned, o, actor.UserID())
	event.Attributes = map[string]string{"agentId": agent.ID.String()}
	h.fanout.Publish(batch, event)

	if err = h.fanout.Persist(ctx, uow.NotificationRepository(), batch); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.fanout.Deliver(ctx, batch)
	return o, nil
}
