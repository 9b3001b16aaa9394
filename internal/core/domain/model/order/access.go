package order

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// CanBeViewedBy reports read access: anyone allowed to see all orders, the
// owning store, or the assigned agent.
func (o *Order) CanBeViewedBy(actor kernel.Actor) bool {
	return actor.Can(kernel.CapViewAllOrders) ||
		o.IsOwnedBy(actor.UserID()) ||
		o.IsAssignedTo(actor.UserID())
}

// AuthorizeStatusChange allows dispatchers on any order and delivery agents on
// orders assigned to them.
func (o *Order) AuthorizeStatusChange(actor kernel.Actor) error {
	if actor.Can(kernel.CapDispatchOrders) {
		return nil
	}
	if actor.Can(kernel.CapDeliverOrders) && o.IsAssignedTo(actor.UserID()) {
		return nil
	}
	return errs.NewForbiddenError("not allowed to change the status of this order")
}

// AuthorizeCancel allows dispatchers, the owning store and the assigned agent.
func (o *Order) AuthorizeCancel(actor kernel.Actor) error {
	if !actor.Can(kernel.CapCancelOrders) {
		return errs.NewForbiddenError("role cannot cancel orders")
	}
	if actor.Can(kernel.CapDispatchOrders) || o.IsOwnedBy(actor.UserID()) || o.IsAssignedTo(actor.UserID()) {
		return nil
	}
	return errs.NewForbiddenError("not allowed to cancel this order")
}

// AuthorizeReturns allows dispatchers and the owning store to request or
// finalize returns.
func (o *Order) AuthorizeReturns(actor kernel.Actor) error {
	if !actor.Can(kernel.CapRequestReturns) {
		return errs.NewForbiddenError("role cannot request returns")
	}
	if actor.Can(kernel.CapDispatchOrders) || o.IsOwnedBy(actor.UserID()) {
		return nil
	}
	return errs.NewForbiddenError("only the ordering store can return this order")
}
