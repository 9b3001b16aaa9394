package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/guard"
)

var ErrListNotificationsQueryIsNotConstructed = errors.New(
	"ListNotificationsQuery must be created via NewListNotificationsQuery constructor",
)

// ListNotificationsQuery reads the caller's own inbox.
type ListNotificationsQuery struct {
	actor      kernel.Actor
	unreadOnly bool
	page       ports.Page

	guard guard.ConstructorGuard
}

func NewListNotificationsQuery(actor kernel.Actor, unreadOnly bool, page ports.Page) (ListNotificationsQuery, error) {
	if err := errors.Join(actor.Validate(), validatePage(page)); err != nil {
		return ListNotificationsQuery{}, err
	}

	return ListNotificationsQuery{
		actor:      actor,
		unreadOnly: unreadOnly,
		page:       page,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ListNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrListNotificationsQueryIsNotConstructed)
}

func (q ListNotificationsQuery) Actor() kernel.Actor {
	return q.actor
}

func (q ListNotificationsQuery) UnreadOnly() bool {
	return q.unreadOnly
}

func (q ListNotificationsQuery) Page() ports.Page {
	return q.page
}
