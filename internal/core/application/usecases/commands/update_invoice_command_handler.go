package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// UpdateInvoiceCommandHandler records payment, sending or cancellation of an
// invoice. Amounts and the customer snapshot are never editable.
type UpdateInvoiceCommandHandler struct {
	uowFactory InvoiceUoWFactory
	clock      ports.Clock
}

func NewUpdateInvoiceCommandHandler(uowFactory InvoiceUoWFactory, clock ports.Clock) UpdateInvoiceCommandHandler {
	return UpdateInvoiceCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h UpdateInvoiceCommandHandler) Handle(ctx context.Context, cmd UpdateInvoiceCommand) (*invoice.Invoice, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if !cmd.Actor().Can(kernel.CapManageInvoices) {
		return nil, errs.NewForbiddenError("only admins can update invoices")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	invoiceRepo := uow.InvoiceRepository()
	inv, err := invoiceRepo.Get(ctx, cmd.InvoiceID())
	if err != nil {
		return nil, err
	}

	if err = inv.Update(cmd.Status(), cmd.PaidAt(), cmd.SentAt(), h.clock.Now()); err != nil {
		return nil, err
	}

	if err = invoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return inv, nil
}
