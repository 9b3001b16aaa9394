package order

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// LineItem is one ordered product with the unit price frozen at placement.
type LineItem struct {
	productID kernel.UUID
	quantity  int
	unitPrice kernel.Money
}

// NewLineItem requires a product, a quantity of at least one and a price.
func NewLineItem(productID kernel.UUID, quantity int, unitPrice kernel.Money) (LineItem, error) {
	if err := errors.Join(
		productID.Validate(),
		validateQuantity(quantity),
		unitPrice.Validate(),
	); err != nil {
		return LineItem{}, err
	}
	return LineItem{productID: productID, quantity: quantity, unitPrice: unitPrice}, nil
}

func (l LineItem) ProductID() kernel.UUID {
	return l.productID
}

func (l LineItem) Quantity() int {
	return l.quantity
}

func (l LineItem) UnitPrice() kernel.Money {
	return l.unitPrice
}

// Total is unit price times quantity, unrounded.
func (l LineItem) Total() kernel.Money {
	return l.unitPrice.MulQuantity(l.quantity)
}

func validateQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	return nil
}
