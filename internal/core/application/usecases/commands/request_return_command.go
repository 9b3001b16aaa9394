package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRequestReturnCommandIsNotConstructed = errors.New(
	"RequestReturnCommand must be created via NewRequestReturnCommand constructor",
)

// RequestReturnCommand opens a Return against some lines of a delivered order.
type RequestReturnCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	orderID kernel.UUID
	items   []returns.Item

	guard guard.ConstructorGuard
}

func NewRequestReturnCommand(actor kernel.Actor, orderID kernel.UUID, items []returns.Item) (RequestReturnCommand, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate()); err != nil {
		return RequestReturnCommand{}, err
	}
	if len(items) == 0 {
		return RequestReturnCommand{}, errs.NewValueIsRequiredError("items")
	}

	copied := make([]returns.Item, len(items))
	copy(copied, items)
	return RequestReturnCommand{
		actor:   actor,
		orderID: orderID,
		items:   copied,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c RequestReturnCommand) Validate() error {
	return c.guard.Validate(ErrRequestReturnCommandIsNotConstructed)
}

func (c RequestReturnCommand) Actor() kernel.Actor {
	return c.actor
}

func (c RequestReturnCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c RequestReturnCommand) Items() []returns.Item {
	items := make([]returns.Item, len(c.items))
	copy(items, c.items)
	return items
}
