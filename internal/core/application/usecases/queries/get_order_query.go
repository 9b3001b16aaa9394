// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries run outside transactions against the reader ports and apply the
// caller's visibility rules.
package queries

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery or NewGetOrderByNumberQuery constructor",
)

// GetOrderQuery fetches one order by id or by its human number.
//
// Example:
//
//	query, err := NewGetOrderByNumberQuery(actor, "ORD-2025-001")
//	if err != nil {
//	    return err
//	}
//	o, err := handler.Handle(ctx, query)
type GetOrderQuery struct {
	actor   kernel.Actor
	orderID *kernel.UUID
	number  string

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(actor kernel.Actor, orderID kernel.UUID) (GetOrderQuery, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate()); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		actor:   actor,
		orderID: &orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func NewGetOrderByNumberQuery(actor kernel.Actor, number string) (GetOrderQuery, error) {
	if err := actor.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	number = strings.TrimSpace(number)
	if number == "" {
		return GetOrderQuery{}, errs.NewValueIsRequiredError("number")
	}

	return GetOrderQuery{
		actor:  actor,
		number: number,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) Actor() kernel.Actor {
	return q.actor
}

// OrderID is nil when the query looks up by number.
func (q GetOrderQuery) OrderID() *kernel.UUID {
	return q.orderID
}

func (q GetOrderQuery) Number() string {
	return q.number
}
