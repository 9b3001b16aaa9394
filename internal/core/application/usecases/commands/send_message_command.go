package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrSendMessageCommandIsNotConstructed = errors.New(
	"SendMessageCommand must be created via NewSendMessageCommand constructor",
)

// SendMessageCommand carries one chat message. The order reference is what
// authorizes store and delivery conversations.
type SendMessageCommand struct { //nolint:recvcheck //using for validation
	actor      kernel.Actor
	receiverID kernel.UUID
	content    string
	orderID    *kernel.UUID

	guard guard.ConstructorGuard
}

func NewSendMessageCommand(
	actor kernel.Actor,
	receiverID kernel.UUID,
	content string,
	orderID *kernel.UUID,
) (SendMessageCommand, error) {
	errList := []error{actor.Validate(), receiverID.Validate()}
	if orderID != nil {
		errList = append(errList, orderID.Validate())
	}
	if err := errors.Join(errList...); err != nil {
		return SendMessageCommand{}, err
	}

	return SendMessageCommand{
		actor:      actor,
		receiverID: receiverID,
		content:    content,
		orderID:    orderID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c SendMessageCommand) Validate() error {
	return c.guard.Validate(ErrSendMessageCommandIsNotConstructed)
}

func (c SendMessageCommand) Actor() kernel.Actor {
	return c.actor
}

func (c SendMessageCommand) ReceiverID() kernel.UUID {
	return c.receiverID
}

func (c SendMessageCommand) Content() string {
	return c.content
}

func (c SendMessageCommand) OrderID() *kernel.UUID {
	return c.orderID
}
