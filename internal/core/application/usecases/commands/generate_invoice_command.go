package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGenerateInvoiceCommandIsNotConstructed = errors.New(
	"GenerateInvoiceCommand must be created via NewGenerateInvoiceCommand constructor",
)

// GenerateInvoiceCommand asks for the invoice of a delivered order. It is
// issued by the system, never by a user, so it carries no actor.
type GenerateInvoiceCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGenerateInvoiceCommand(orderID kernel.UUID) (GenerateInvoiceCommand, error) {
	if err := orderID.Validate(); err != nil {
		return GenerateInvoiceCommand{}, err
	}

	return GenerateInvoiceCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c GenerateInvoiceCommand) Validate() error {
	return c.guard.Validate(ErrGenerateInvoiceCommandIsNotConstructed)
}

func (c GenerateInvoiceCommand) OrderID() kernel.UUID {
	return c.orderID
}
