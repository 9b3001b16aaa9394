package services

import (
	"time"

	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/user"

	"github.com/shopspring/decimal"
)

// CatalogEntry is what the catalog knows about an ordered product at
// invoicing time.
type CatalogEntry struct {
	Name    string
	TaxRate decimal.Decimal
}

// InvoiceIssuer derives an invoice from a delivered order.
//
// Business rules:
//   - line prices and quantities come from the order, never the catalog
//   - products missing from the catalog are invoiced untaxed
//   - the customer snapshot is the store, addressed at the order address when
//     one was captured and at the store profile address otherwise
type InvoiceIssuer struct{}

func NewInvoiceIssuer() InvoiceIssuer {
	return InvoiceIssuer{}
}

// Issue builds the invoice; it does not persist it.
func (InvoiceIssuer) Issue(
	id kernel.UUID,
	number string,
	o *order.Order,
	catalog map[kernel.UUID]CatalogEntry,
	store user.User,
	at time.Time,
) (*invoice.Invoice, error) {
	items := o.Items()
	inputs := make([]invoice.LineInput, 0, len(items))
	for _, item := range items {
		entry, ok := catalog[item.ProductID()]
		if !ok {
			entry = CatalogEntry{TaxRate: decimal.Zero}
		}
		inputs = append(inputs, invoice.LineInput{
			ProductID: item.ProductID(),
			Name:      entry.Name,
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
			TaxRate:   entry.TaxRate,
		})
	}

	address := o.Address()
	if address.IsEmpty() {
		address = store.Address
	}
	customer := invoice.Customer{
		ID:      o.StoreID(),
		Name:    store.Name,
		Email:   store.Email,
		Address: address,
	}

	return invoice.Issue(id, number, o, inputs, customer, at)
}
