package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

const maxPageLimit = 200

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery lists the orders visible to the caller, newest first,
// optionally narrowed to one status.
type ListOrdersQuery struct {
	actor  kernel.Actor
	status *order.Status
	page   ports.Page

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(actor kernel.Actor, status *order.Status, page ports.Page) (ListOrdersQuery, error) {
	errList := []error{actor.Validate(), validatePage(page)}
	if status != nil {
		errList = append(errList, status.Validate())
	}
	if err := errors.Join(errList...); err != nil {
		return ListOrdersQuery{}, err
	}

	q := ListOrdersQuery{
		actor: actor,
		page:  page,
		guard: guard.NewConstructorGuard(),
	}
	if status != nil {
		s := *status
		q.status = &s
	}
	return q, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Actor() kernel.Actor {
	return q.actor
}

func (q ListOrdersQuery) Status() *order.Status {
	return q.status
}

func (q ListOrdersQuery) Page() ports.Page {
	return q.page
}

func validatePage(page ports.Page) error {
	if page.Limit < 0 || page.Limit > maxPageLimit {
		return errs.NewValueIsOutOfRangeError("limit", page.Limit, 0, maxPageLimit)
	}
	if page.Offset < 0 {
		return errs.NewValueIsOutOfRangeError("offset", page.Offset, 0, "unbounded")
	}
	return nil
}
