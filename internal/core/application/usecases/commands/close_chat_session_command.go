package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrCloseChatSessionCommandIsNotConstructed = errors.New(
	"CloseChatSessionCommand must be created via NewCloseChatSessionCommand constructor",
)

type CloseChatSessionCommand struct { //nolint:recvcheck //using for validation
	actor     kernel.Actor
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCloseChatSessionCommand(actor kernel.Actor, sessionID kernel.UUID) (CloseChatSessionCommand, error) {
	if err := errors.Join(actor.Validate(), sessionID.Validate()); err != nil {
		return CloseChatSessionCommand{}, err
	}

	return CloseChatSessionCommand{
		actor:     actor,
		sessionID: sessionID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CloseChatSessionCommand) Validate() error {
	return c.guard.Validate(ErrCloseChatSessionCommandIsNotConstructed)
}

func (c CloseChatSessionCommand) Actor() kernel.Actor {
	return c.actor
}

func (c CloseChatSessionCommand) SessionID() kernel.UUID {
	return c.sessionID
}
