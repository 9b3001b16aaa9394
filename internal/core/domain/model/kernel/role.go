package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Role is the closed set of roles supplied by the identity provider.
type Role int

const (
	UnknownRole Role = iota
	RoleAdmin
	RoleStore
	RoleDelivery
	RoleSupport
)

var roleNames = map[Role]string{
	RoleAdmin:    "admin",
	RoleStore:    "store",
	RoleDelivery: "delivery",
	RoleSupport:  "support",
}

// ParseRole maps the identity provider's role string onto Role.
func ParseRole(s string) (Role, error) {
	for r, name := range roleNames {
		if name == s {
			return r, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
}

// Validate rejects UnknownRole and out-of-range values.
func (r Role) Validate() error {
	if _, ok := roleNames[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

// Can consults the capability table.
func (r Role) Can(c Capability) bool {
	_, ok := capabilityTable[r][c]
	return ok
}
