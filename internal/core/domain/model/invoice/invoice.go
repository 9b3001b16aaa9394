package invoice

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrInvoiceIsNotConstructed is returned for an Invoice that bypassed Issue.
var ErrInvoiceIsNotConstructed = errors.New("Invoice must be created via Issue")

// CounterName is the per-year sequence backing invoice numbers.
func CounterName(year int) string {
	return fmt.Sprintf("invoice:%d", year)
}

// FormatNumber renders the invoice number, e.g. INV-2025-00042.
func FormatNumber(year int, seq int64) string {
	return fmt.Sprintf("INV-%d-%05d", year, seq)
}

// Customer is the buyer snapshot taken at issuance. Later profile edits never
// reach an issued invoice.
type Customer struct {
	ID      kernel.UUID
	Name    string
	Email   string
	Address kernel.Address
}

// LineInput is what the issuer knows about one order line: the frozen price
// and quantity from the order plus the catalog name and tax rate.
type LineInput struct {
	ProductID kernel.UUID
	Name      string
	Quantity  int
	UnitPrice kernel.Money
	TaxRate   decimal.Decimal
}

// Line is an invoice line. Total is tax-inclusive; Tax is the portion of Total
// that is tax.
type Line struct {
	ProductID kernel.UUID
	Name      string
	Quantity  int
	UnitPrice kernel.Money
	TaxRate   decimal.Decimal
	Tax       kernel.Money
	Total     kernel.Money
}

// Subtotal is the line total without tax.
func (l Line) Subtotal() kernel.Money {
	return l.Total.Sub(l.Tax)
}

// Invoice is derived once from a delivered order.
//
// Invariants:
//   - Total equals the order total
//   - Subtotal + TotalTax equals Total
//   - at most one invoice per order (enforced by storage)
type Invoice struct {
	id        kernel.UUID
	number    string
	orderID   kernel.UUID
	lines     []Line
	subtotal  kernel.Money
	totalTax  kernel.Money
	total     kernel.Money
	customer  Customer
	status    Status
	issuedAt  time.Time
	paidAt    *time.Time
	sentAt    *time.Time
	updatedAt time.Time

	isConstructed bool
}

// Issue builds an invoice for a delivered order. Prices are treated as tax
// inclusive: each line's tax is lineTotal × rate / (100 + rate), rounded to
// cents, and the subtotal is what remains.
func Issue(
	id kernel.UUID,
	number string,
	o *order.Order,
	inputs []LineInput,
	customer Customer,
	at time.Time,
) (*Invoice, error) {
	if err := errors.Join(id.Validate(), o.Validate(), customer.ID.Validate()); err != nil {
		return nil, err
	}
	if number == "" {
		return nil, errs.NewValueIsRequiredError("number")
	}
	if o.Status() != order.Delivered && o.Status() != order.Returned {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"order",
			fmt.Errorf("only delivered orders are invoiced, order is %s", o.Status()),
		)
	}
	if len(inputs) == 0 {
		return nil, errs.NewValueIsRequiredError("lines")
	}

	inv := &Invoice{
		id:            id,
		number:        number,
		orderID:       o.ID(),
		lines:         make([]Line, 0, len(inputs)),
		subtotal:      kernel.ZeroMoney(),
		totalTax:      kernel.ZeroMoney(),
		total:         kernel.ZeroMoney(),
		customer:      customer,
		status:        Issued,
		issuedAt:      at,
		updatedAt:     at,
		isConstructed: true,
	}

	for _, in := range inputs {
		lineTotal := in.UnitPrice.MulQuantity(in.Quantity)
		line := Line{
			ProductID: in.ProductID,
			Name:      in.Name,
			Quantity:  in.Quantity,
			UnitPrice: in.UnitPrice,
			TaxRate:   in.TaxRate,
			Tax:       lineTotal.InclusiveTax(in.TaxRate),
			Total:     lineTotal,
		}
		inv.lines = append(inv.lines, line)
		inv.totalTax = inv.totalTax.Add(line.Tax)
		inv.subtotal = inv.subtotal.Add(line.Subtotal())
		inv.total = inv.total.Add(line.Total)
	}

	if !inv.total.IsEqual(o.Total()) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"lines",
			fmt.Errorf("invoice total %s does not match order total %s", inv.total, o.Total()),
		)
	}

	return inv, nil
}

// RestoreInvoice rebuilds a persisted invoice.
func RestoreInvoice(
	id kernel.UUID,
	number string,
	orderID kernel.UUID,
	lines []Line,
	subtotal, totalTax, total kernel.Money,
	customer Customer,
	status Status,
	issuedAt time.Time,
	paidAt, sentAt *time.Time,
	updatedAt time.Time,
) *Invoice {
	restored := make([]Line, len(lines))
	copy(restored, lines)
	return &Invoice{
		id:            id,
		number:        number,
		orderID:       orderID,
		lines:         restored,
		subtotal:      subtotal,
		totalTax:      totalTax,
		total:         total,
		customer:      customer,
		status:        status,
		issuedAt:      issuedAt,
		paidAt:        paidAt,
		sentAt:        sentAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}
}

func (i *Invoice) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrInvoiceIsNotConstructed
	}
	return nil
}

func (i *Invoice) ID() kernel.UUID {
	return i.id
}

func (i *Invoice) Number() string {
	return i.number
}

func (i *Invoice) OrderID() kernel.UUID {
	return i.orderID
}

func (i *Invoice) Lines() []Line {
	out := make([]Line, len(i.lines))
	copy(out, i.lines)
	return out
}

func (i *Invoice) Subtotal() kernel.Money {
	return i.subtotal
}

func (i *Invoice) TotalTax() kernel.Money {
	return i.totalTax
}

func (i *Invoice) Total() kernel.Money {
	return i.total
}

func (i *Invoice) Customer() Customer {
	return i.customer
}

func (i *Invoice) Status() Status {
	return i.status
}

func (i *Invoice) IssuedAt() time.Time {
	return i.issuedAt
}

func (i *Invoice) PaidAt() *time.Time {
	return i.paidAt
}

func (i *Invoice) SentAt() *time.Time {
	return i.sentAt
}

func (i *Invoice) UpdatedAt() time.Time {
	return i.updatedAt
}

// Update applies the administrative fields. Nil arguments leave the field as is.
// A cancelled invoice cannot be reopened.
func (i *Invoice) Update(status *Status, paidAt, sentAt *time.Time, at time.Time) error {
	if status != nil {
		if err := status.Validate(); err != nil {
			return err
		}
		if i.status == Cancelled && *status != Cancelled {
			return errs.NewInvalidTransitionError("invoice", i.status, *status)
		}
		i.status = *status
	}
	if paidAt != nil {
		t := *paidAt
		i.paidAt = &t
	}
	if sentAt != nil {
		t := *sentAt
		i.sentAt = &t
	}
	i.updatedAt = at
	return nil
}

// Clone returns a deep copy.
func (i *Invoice) Clone() *Invoice {
	c := *i
	c.lines = i.Lines()
	if i.paidAt != nil {
		t := *i.paidAt
		c.paidAt = &t
	}
	if i.sentAt != nil {
		t := *i.sentAt
		c.sentAt = &t
	}
	return &c
}
