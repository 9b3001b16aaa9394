package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateInvoiceCommandIsNotConstructed = errors.New(
	"UpdateInvoiceCommand must be created via NewUpdateInvoiceCommand constructor",
)

// UpdateInvoiceCommand edits the administrative fields of an invoice. At
// least one of status, paidAt and sentAt must be set.
type UpdateInvoiceCommand struct { //nolint:recvcheck //using for validation
	actor     kernel.Actor
	invoiceID kernel.UUID
	status    *invoice.Status
	paidAt    *time.Time
	sentAt    *time.Time

	guard guard.ConstructorGuard
}

func NewUpdateInvoiceCommand(
	actor kernel.Actor,
	invoiceID kernel.UUID,
	status *invoice.Status,
	paidAt, sentAt *time.Time,
) (UpdateInvoiceCommand, error) {
	if err := errors.Join(actor.Validate(), invoiceID.Validate()); err != nil {
		return UpdateInvoiceCommand{}, err
	}
	if status == nil && paidAt == nil && sentAt == nil {
		return UpdateInvoiceCommand{}, errs.NewValueIsRequiredError("status, paidAt or sentAt")
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return UpdateInvoiceCommand{}, err
		}
	}

	return UpdateInvoiceCommand{
		actor:     actor,
		invoiceID: invoiceID,
		status:    status,
		paidAt:    paidAt,
		sentAt:    sentAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateInvoiceCommand) Validate() error {
	return c.guard.Validate(ErrUpdateInvoiceCommandIsNotConstructed)
}

func (c UpdateInvoiceCommand) Actor() kernel.Actor {
	return c.actor
}

func (c UpdateInvoiceCommand) InvoiceID() kernel.UUID {
	return c.invoiceID
}

func (c UpdateInvoiceCommand) Status() *invoice.Status {
	return c.status
}

func (c UpdateInvoiceCommand) PaidAt() *time.Time {
	return c.paidAt
}

func (c UpdateInvoiceCommand) SentAt() *time.Time {
	return c.sentAt
}
