package kernel

import (
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Address is a postal address snapshot. It is copied into orders and invoices
// so later profile edits never rewrite history.
type Address struct {
	street  string
	city    string
	state   string
	zipCode string
}

// NewAddress trims every part and requires a street.
func NewAddress(street, city, state, zipCode string) (Address, error) {
	a := Address{
		street:  strings.TrimSpace(street),
		city:    strings.TrimSpace(city),
		state:   strings.TrimSpace(state),
		zipCode: strings.TrimSpace(zipCode),
	}
	if a.street == "" {
		return Address{}, errs.NewValueIsRequiredError("address.street")
	}
	return a, nil
}

func (a Address) Street() string {
	return a.street
}

func (a Address) City() string {
	return a.city
}

func (a Address) State() string {
	return a.state
}

func (a Address) ZipCode() string {
	return a.zipCode
}

// IsEmpty reports the zero Address.
func (a Address) IsEmpty() bool {
	return a == Address{}
}

// String renders a single-line form for emails and logs.
func (a Address) String() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.street, a.city, a.state, a.zipCode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
