package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrAssignDeliveryCommandIsNotConstructed = errors.New(
	"AssignDeliveryCommand must be created via NewAssignDeliveryCommand constructor",
)

// AssignDeliveryCommand represents a dispatcher handing an order to a delivery agent.
type AssignDeliveryCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	orderID kernel.UUID
	agentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignDeliveryCommand(actor kernel.Actor, orderID, agentID kernel.UUID) (AssignDeliveryCommand, error) {
	if err := errors.Join(
		actor.Validate(),
		orderID.Validate(),
		agentID.Validate(),
	); err != nil {
		return AssignDeliveryCommand{}, err
	}

	return AssignDeliveryCommand{
		actor:   actor,
		orderID: orderID,
		agentID: agentID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AssignDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAssignDeliveryCommandIsNotConstructed)
}

func (c AssignDeliveryCommand) Actor() kernel.Actor {
	return c.actor
}

func (c AssignDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AssignDeliveryCommand) AgentID() kernel.UUID {
	return c.agentID
}
