package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> WaitingForDelivery ──> Delivering ──> Delivered ──> Returned
//	   │                │                  │
//	   └────────────────┴──────────────────┴──> Cancelled
//
// Cancelled and Returned are terminal. The table is exhaustive: any move not
// listed in getTransitions fails with an InvalidTransitionError.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a freshly placed order.
	Pending

	// WaitingForDelivery means an agent is assigned but has not picked the order up.
	WaitingForDelivery

	// Delivering means the assigned agent confirmed pickup.
	Delivering

	// Delivered triggers invoicing. Only Returned may follow.
	Delivered

	// Returned is terminal.
	Returned

	// Cancelled is terminal. Reaching it restocks every line.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:            "unknown",
		Pending:            "pending",
		WaitingForDelivery: "waiting_for_delivery",
		Delivering:         "delivering",
		Delivered:          "delivered",
		Returned:           "returned",
		Cancelled:          "cancelled",
	}
}

func getTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal statuses have no outgoing moves
	return map[Status][]Status{
		Pending:            {WaitingForDelivery, Cancelled},
		WaitingForDelivery: {Delivering, Cancelled},
		Delivering:         {Delivered, Cancelled},
		Delivered:          {Returned},
	}
}

// ParseStatus maps a wire or persisted name onto Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", s))
}

// Validate checks that s is one of the six lifecycle statuses.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports statuses with no outgoing transitions.
func (s Status) IsTerminal() bool {
	return len(getTransitions()[s]) == 0
}

// CanTransitionTo reports whether target is listed for s.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range getTransitions()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo validates the move from s to target.
//
// Example:
//
//	next, err := order.Delivered.TransitionTo(order.Cancelled)
//	// err: cannot change order status from delivered to cancelled
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return s, err
	}
	if !s.CanTransitionTo(target) {
		return s, errs.NewInvalidTransitionError("order", s, target)
	}
	return target, nil
}

// AllowsAssignment reports whether an admin may (re)assign a delivery agent.
// Assignment is an override that forces WaitingForDelivery from any
// non-final status, including re-assignment while Delivering.
func (s Status) AllowsAssignment() bool {
	return s == Pending || s == WaitingForDelivery || s == Delivering
}
