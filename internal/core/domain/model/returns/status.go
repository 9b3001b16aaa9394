package returns

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status is the lifecycle of a return request, independent of the order's.
//
//	Requested ──> Approved ──> InTransit ──> Received ──> Completed
//	    │ │          │             │
//	    │ └─> Rejected             │
//	    └────────────┴─────────────┴──> Cancelled
type Status int

const (
	Unknown Status = iota
	Requested
	Approved
	Rejected
	InTransit
	Received
	Completed
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Requested: "requested",
		Approved:  "approved",
		Rejected:  "rejected",
		InTransit: "in_transit",
		Received:  "received",
		Completed: "completed",
		Cancelled: "cancelled",
	}
}

func getTransitions() map[Status][]Status {
	//nolint:exhaustive // Rejected, Completed and Cancelled are terminal
	return map[Status][]Status{
		Requested: {Approved, Rejected, Cancelled},
		Approved:  {InTransit, Cancelled},
		InTransit: {Received, Cancelled},
		Received:  {Completed},
	}
}

func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid return status", s))
}

func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// CountsTowardsQuantity reports whether a return in this status still claims
// its quantities against the order.
func (s Status) CountsTowardsQuantity() bool {
	return s != Rejected && s != Cancelled
}

// TransitionTo validates the move from s to target.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return s, err
	}
	for _, next := range getTransitions()[s] {
		if next == target {
			return target, nil
		}
	}
	return s, errs.NewInvalidTransitionError("return", s, target)
}
