package product

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status is the catalog availability of a product.
//
// Stock drives two automatic moves:
//
//	any (except discontinued, draft) ──stock hits 0──> OutOfStock
//	OutOfStock ──stock above 0──> Active
//
// Discontinued and Draft are manual overrides and are never changed by stock.
type Status int

const (
	Unknown Status = iota
	Active
	Inactive
	OutOfStock
	Discontinued
	Draft
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:      "unknown",
		Active:       "active",
		Inactive:     "inactive",
		OutOfStock:   "out_of_stock",
		Discontinued: "discontinued",
		Draft:        "draft",
	}
}

// ParseStatus maps the persisted name back onto Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("product status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if s <= Unknown || s > Draft {
		return errs.NewValueIsInvalidErrorWithCause("product status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsManualOverride reports statuses that stock changes must leave alone.
func (s Status) IsManualOverride() bool {
	return s == Discontinued || s == Draft
}

// AfterStockChange returns the status a product should hold once its stock
// becomes newStock.
func (s Status) AfterStockChange(newStock int) Status {
	switch {
	case s.IsManualOverride():
		return s
	case newStock <= 0:
		return OutOfStock
	case s == OutOfStock:
		return Active
	default:
		return s
	}
}
