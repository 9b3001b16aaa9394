package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrSoftDeleteOrderCommandIsNotConstructed = errors.New(
	"SoftDeleteOrderCommand must be created via NewSoftDeleteOrderCommand constructor",
)

// SoftDeleteOrderCommand hides an order from every read.
type SoftDeleteOrderCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewSoftDeleteOrderCommand(actor kernel.Actor, orderID kernel.UUID) (SoftDeleteOrderCommand, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate()); err != nil {
		return SoftDeleteOrderCommand{}, err
	}

	return SoftDeleteOrderCommand{
		actor:   actor,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c SoftDeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrSoftDeleteOrderCommandIsNotConstructed)
}

func (c SoftDeleteOrderCommand) Actor() kernel.Actor {
	return c.actor
}

func (c SoftDeleteOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
