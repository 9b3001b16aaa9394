package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// GetInvoiceQueryHandler serves invoice viewers. A store may also read the
// invoice of an order it owns when looking it up by order.
type GetInvoiceQueryHandler struct {
	invoices ports.InvoiceReader
	orders   ports.OrderReader
}

func NewGetInvoiceQueryHandler(invoices ports.InvoiceReader, orders ports.OrderReader) GetInvoiceQueryHandler {
	return GetInvoiceQueryHandler{invoices: invoices, orders: orders}
}

func (h GetInvoiceQueryHandler) Handle(ctx context.Context, query GetInvoiceQuery) (*invoice.Invoice, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	actor := query.Actor()
	if id := query.InvoiceID(); id != nil {
		if !actor.Can(kernel.CapViewInvoices) {
			return nil, errs.NewForbiddenError("role cannot view invoices")
		}
		return h.invoices.FindInvoice(ctx, *id)
	}

	orderID := *query.OrderID()
	if !actor.Can(kernel.CapViewInvoices) {
		o, err := h.orders.FindOrder(ctx, orderID)
		if err != nil {
			return nil, err
		}
		if !o.IsOwnedBy(actor.UserID()) {
			return nil, errs.NewForbiddenError("invoice belongs to another store")
		}
	}
	return h.invoices.FindInvoiceByOrder(ctx, orderID)
}

// ListInvoicesQueryHandler lists invoices for invoice viewers.
type ListInvoicesQueryHandler struct {
	invoices ports.InvoiceReader
}

func NewListInvoicesQueryHandler(invoices ports.InvoiceReader) ListInvoicesQueryHandler {
	return ListInvoicesQueryHandler{invoices: invoices}
}

func (h ListInvoicesQueryHandler) Handle(ctx context.Context, query ListInvoicesQuery) ([]*invoice.Invoice, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if !query.Actor().Can(kernel.CapViewInvoices) {
		return nil, errs.NewForbiddenError("role cannot view invoices")
	}
	return h.invoices.ListInvoices(ctx, query.Page())
}
