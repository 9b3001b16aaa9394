package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

const maxCancellationReasonLength = 500

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand cancels an order with an optional free-text reason.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	orderID kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(actor kernel.Actor, orderID kernel.UUID, reason string) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{
		actor:   actor,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		actor.Validate(),
		orderID.Validate(),
		cmd.setReason(reason),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	return cmd, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) Actor() kernel.Actor {
	return c.actor
}

func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CancelOrderCommand) Reason() string {
	return c.reason
}

func (c *CancelOrderCommand) setReason(reason string) error {
	reason = strings.TrimSpace(reason)
	if n := len([]rune(reason)); n > maxCancellationReasonLength {
		return errs.NewValueIsOutOfRangeError("reason length", n, 0, maxCancellationReasonLength)
	}

	c.reason = reason
	return nil
}
