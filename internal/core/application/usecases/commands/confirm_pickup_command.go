package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrConfirmPickupCommandIsNotConstructed = errors.New(
	"ConfirmPickupCommand must be created via NewConfirmPickupCommand constructor",
)

// ConfirmPickupCommand represents the assigned agent confirming they hold the parcel.
type ConfirmPickupCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewConfirmPickupCommand(actor kernel.Actor, orderID kernel.UUID) (ConfirmPickupCommand, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate()); err != nil {
		return ConfirmPickupCommand{}, err
	}

	return ConfirmPickupCommand{
		actor:   actor,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmPickupCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPickupCommandIsNotConstructed)
}

func (c ConfirmPickupCommand) Actor() kernel.Actor {
	return c.actor
}

func (c ConfirmPickupCommand) OrderID() kernel.UUID {
	return c.orderID
}
