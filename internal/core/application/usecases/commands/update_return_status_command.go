package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateReturnStatusCommandIsNotConstructed = errors.New(
	"UpdateReturnStatusCommand must be created via NewUpdateReturnStatusCommand constructor",
)

// UpdateReturnStatusCommand moves a Return along its own lifecycle.
type UpdateReturnStatusCommand struct { //nolint:recvcheck //using for validation
	actor    kernel.Actor
	returnID kernel.UUID
	target   returns.Status

	guard guard.ConstructorGuard
}

func NewUpdateReturnStatusCommand(
	actor kernel.Actor,
	returnID kernel.UUID,
	target returns.Status,
) (UpdateReturnStatusCommand, error) {
	if err := errors.Join(actor.Validate(), returnID.Validate(), target.Validate()); err != nil {
		return UpdateReturnStatusCommand{}, err
	}

	return UpdateReturnStatusCommand{
		actor:    actor,
		returnID: returnID,
		target:   target,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateReturnStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateReturnStatusCommandIsNotConstructed)
}

func (c UpdateReturnStatusCommand) Actor() kernel.Actor {
	return c.actor
}

func (c UpdateReturnStatusCommand) ReturnID() kernel.UUID {
	return c.returnID
}

func (c UpdateReturnStatusCommand) Target() returns.Status {
	return c.target
}
