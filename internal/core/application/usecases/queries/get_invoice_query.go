package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetInvoiceQueryIsNotConstructed = errors.New(
		"GetInvoiceQuery must be created via NewGetInvoiceQuery or NewGetInvoiceByOrderQuery constructor",
	)
	ErrListInvoicesQueryIsNotConstructed = errors.New(
		"ListInvoicesQuery must be created via NewListInvoicesQuery constructor",
	)
)

// GetInvoiceQuery fetches one invoice by its id or by the order it bills.
type GetInvoiceQuery struct {
	actor     kernel.Actor
	invoiceID *kernel.UUID
	orderID   *kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetInvoiceQuery(actor kernel.Actor, invoiceID kernel.UUID) (GetInvoiceQuery, error) {
	if err := errors.Join(actor.Validate(), invoiceID.Validate()); err != nil {
		return GetInvoiceQuery{}, err
	}

	return GetInvoiceQuery{
		actor:     actor,
		invoiceID: &invoiceID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func NewGetInvoiceByOrderQuery(actor kernel.Actor, orderID kernel.UUID) (GetInvoiceQuery, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate()); err != nil {
		return GetInvoiceQuery{}, err
	}

	return GetInvoiceQuery{
		actor:   actor,
		orderID: &orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetInvoiceQuery) Validate() error {
	return q.guard.Validate(ErrGetInvoiceQueryIsNotConstructed)
}

func (q GetInvoiceQuery) Actor() kernel.Actor {
	return q.actor
}

func (q GetInvoiceQuery) InvoiceID() *kernel.UUID {
	return q.invoiceID
}

func (q GetInvoiceQuery) OrderID() *kernel.UUID {
	return q.orderID
}

// ListInvoicesQuery pages through every invoice, newest first.
type ListInvoicesQuery struct {
	actor kernel.Actor
	page  ports.Page

	guard guard.ConstructorGuard
}

func NewListInvoicesQuery(actor kernel.Actor, page ports.Page) (ListInvoicesQuery, error) {
	if err := errors.Join(actor.Validate(), validatePage(page)); err != nil {
		return ListInvoicesQuery{}, err
	}

	return ListInvoicesQuery{
		actor: actor,
		page:  page,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q ListInvoicesQuery) Validate() error {
	return q.guard.Validate(ErrListInvoicesQueryIsNotConstructed)
}

func (q ListInvoicesQuery) Actor() kernel.Actor {
	return q.actor
}

func (q ListInvoicesQuery) Page() ports.Page {
	return q.page
}
