package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// OrderLine is one requested product and quantity.
type OrderLine struct {
	ProductID kernel.UUID
	Quantity  int
}

// PlaceOrderCommand represents a store ordering products. The address is
// optional; the store's profile address is used when it is nil.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand(actor, []OrderLine{{ProductID: id, Quantity: 2}}, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid order: %w", err)
//	}
//	o, err := handler.Handle(ctx, cmd)
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	lines   []OrderLine
	address *kernel.Address

	guard guard.ConstructorGuard
}

func NewPlaceOrderCommand(actor kernel.Actor, lines []OrderLine, address *kernel.Address) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		actor.Validate(),
		cmd.setLines(lines),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	cmd.actor = actor
	if address != nil {
		a := *address
		cmd.address = &a
	}
	return cmd, nil
}

func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) Actor() kernel.Actor {
	return c.actor
}

func (c PlaceOrderCommand) Lines() []OrderLine {
	lines := make([]OrderLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// Address returns the explicit delivery address, or nil.
func (c PlaceOrderCommand) Address() *kernel.Address {
	return c.address
}

func (c *PlaceOrderCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for i, line := range lines {
		if err := line.ProductID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d].productId", i), err)
		}
		if line.Quantity < 1 {
			return errs.NewValueIsOutOfRangeError(fmt.Sprintf("items[%d].quantity", i), line.Quantity, 1, "unbounded")
		}
	}

	c.lines = make([]OrderLine, len(lines))
	copy(c.lines, lines)
	return nil
}
