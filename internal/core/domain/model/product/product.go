package product

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrProductIsNotConstructed is returned for a Product that bypassed NewProduct.
var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

// Product is the catalog entry the inventory ledger mutates. Price is the
// current price; orders freeze their own copy when placed.
//
// Invariants:
//   - stock is never negative
//   - stock == 0 implies OutOfStock unless the status is a manual override
type Product struct {
	id     kernel.UUID
	name   string
	price  kernel.Money
	stock  int
	status Status
	taxID  *kernel.UUID

	isConstructed bool
}

// NewProduct creates a product. The status is normalized against stock, so
// NewProduct(..., 0, Active) yields an OutOfStock product.
func NewProduct(id kernel.UUID, name string, price kernel.Money, stock int, status Status, taxID *kernel.UUID) (*Product, error) {
	p := &Product{isConstructed: true}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setPrice(price),
		p.setStock(stock),
		status.Validate(),
		p.setTaxID(taxID),
	); err != nil {
		return nil, err
	}
	p.status = status.AfterStockChange(stock)

	return p, nil
}

// RestoreProduct rebuilds a persisted product without normalizing its status.
func RestoreProduct(id kernel.UUID, name string, price kernel.Money, stock int, status Status, taxID *kernel.UUID) *Product {
	return &Product{
		id:            id,
		name:          name,
		price:         price,
		stock:         stock,
		status:        status,
		taxID:         taxID,
		isConstructed: true,
	}
}

func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

func (p *Product) ID() kernel.UUID {
	return p.id
}

func (p *Product) Name() string {
	return p.name
}

func (p *Product) Price() kernel.Money {
	return p.price
}

func (p *Product) Stock() int {
	return p.stock
}

func (p *Product) Status() Status {
	return p.status
}

func (p *Product) TaxID() *kernel.UUID {
	return p.taxID
}

// Reserve takes quantity units out of stock, failing with InsufficientStock
// when fewer are on hand.
func (p *Product) Reserve(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	if p.stock < quantity {
		return errs.NewInsufficientStockError(p.id.String(), quantity, p.stock)
	}
	p.Adjust(-quantity)
	return nil
}

// Adjust applies a signed delta, clamping at zero and recomputing status.
func (p *Product) Adjust(delta int) {
	stock := p.stock + delta
	if stock < 0 {
		stock = 0
	}
	p.stock = stock
	p.status = p.status.AfterStockChange(stock)
}

// Clone returns a deep copy for stores that hand out snapshots.
func (p *Product) Clone() *Product {
	c := *p
	if p.taxID != nil {
		id := *p.taxID
		c.taxID = &id
	}
	return &c
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Product) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	p.price = price
	return nil
}

func (p *Product) setStock(stock int) error {
	if stock < 0 {
		return errs.NewValueIsInvalidErrorWithCause("stock", fmt.Errorf("%d is negative", stock))
	}
	p.stock = stock
	return nil
}

func (p *Product) setTaxID(taxID *kernel.UUID) error {
	if taxID == nil {
		return nil
	}
	if err := taxID.Validate(); err != nil {
		return err
	}
	id := *taxID
	p.taxID = &id
	return nil
}
