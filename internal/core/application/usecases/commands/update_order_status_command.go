package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand requests a move along the order transition table.
//
// Example:
//
//	cmd, _ := NewUpdateOrderStatusCommand(agent, orderID, order.Delivered)
//	o, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrInvalidTransition) {
//	    // the order was not delivering
//	}
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	orderID kernel.UUID
	target  order.Status

	guard guard.ConstructorGuard
}

func NewUpdateOrderStatusCommand(
	actor kernel.Actor,
	orderID kernel.UUID,
	target order.Status,
) (UpdateOrderStatusCommand, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate(), target.Validate()); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return UpdateOrderStatusCommand{
		actor:   actor,
		orderID: orderID,
		target:  target,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

func (c UpdateOrderStatusCommand) Actor() kernel.Actor {
	return c.actor
}

func (c UpdateOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpdateOrderStatusCommand) Target() order.Status {
	return c.target
}
