package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrFinalizeReturnCommandIsNotConstructed = errors.New(
	"FinalizeReturnCommand must be created via NewFinalizeReturnCommand constructor",
)

// FinalizeReturnCommand marks a delivered order as returned.
type FinalizeReturnCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewFinalizeReturnCommand(actor kernel.Actor, orderID kernel.UUID) (FinalizeReturnCommand, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate()); err != nil {
		return FinalizeReturnCommand{}, err
	}

	return FinalizeReturnCommand{
		actor:   actor,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c FinalizeReturnCommand) Validate() error {
	return c.guard.Validate(ErrFinalizeReturnCommandIsNotConstructed)
}

func (c FinalizeReturnCommand) Actor() kernel.Actor {
	return c.actor
}

func (c FinalizeReturnCommand) OrderID() kernel.UUID {
	return c.orderID
}
