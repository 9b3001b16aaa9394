package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/chat"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrOpenChatSessionCommandIsNotConstructed = errors.New(
	"OpenChatSessionCommand must be created via NewOpenChatSessionCommand constructor",
)

// OpenChatSessionCommand lets an admin open a chat window between two users.
type OpenChatSessionCommand struct { //nolint:recvcheck //using for validation
	actor        kernel.Actor
	participants [2]kernel.UUID
	kind         chat.SessionType
	orderID      *kernel.UUID

	guard guard.ConstructorGuard
}

func NewOpenChatSessionCommand(
	actor kernel.Actor,
	participants [2]kernel.UUID,
	kind chat.SessionType,
	orderID *kernel.UUID,
) (OpenChatSessionCommand, error) {
	errList := []error{
		actor.Validate(),
		participants[0].Validate(),
		participants[1].Validate(),
		kind.Validate(),
	}
	if orderID != nil {
		errList = append(errList, orderID.Validate())
	}
	if err := errors.Join(errList...); err != nil {
		return OpenChatSessionCommand{}, err
	}

	return OpenChatSessionCommand{
		actor:        actor,
		participants: participants,
		kind:         kind,
		orderID:      orderID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c OpenChatSessionCommand) Validate() error {
	return c.guard.Validate(ErrOpenChatSessionCommandIsNotConstructed)
}

func (c OpenChatSessionCommand) Actor() kernel.Actor {
	return c.actor
}

func (c OpenChatSessionCommand) Participants() [2]kernel.UUID {
	return c.participants
}

func (c OpenChatSessionCommand) Type() chat.SessionType {
	return c.kind
}

func (c OpenChatSessionCommand) OrderID() *kernel.UUID {
	return c.orderID
}
