package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrListReturnsQueryIsNotConstructed = errors.New(
	"ListReturnsQuery must be created via NewListReturnsQuery constructor",
)

// ListReturnsQuery lists every return filed against one order.
type ListReturnsQuery struct {
	actor   kernel.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListReturnsQuery(actor kernel.Actor, orderID kernel.UUID) (ListReturnsQuery, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate()); err != nil {
		return ListReturnsQuery{}, err
	}

	return ListReturnsQuery{
		actor:   actor,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q ListReturnsQuery) Validate() error {
	return q.guard.Validate(ErrListReturnsQueryIsNotConstructed)
}

func (q ListReturnsQuery) Actor() kernel.Actor {
	return q.actor
}

func (q ListReturnsQuery) OrderID() kernel.UUID {
	return q.orderID
}
