package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrChatHistoryQueryIsNotConstructed = errors.New(
		"ChatHistoryQuery must be created via NewChatHistoryQuery constructor",
	)
	ErrListChatSessionsQueryIsNotConstructed = errors.New(
		"ListChatSessionsQuery must be created via NewListChatSessionsQuery constructor",
	)
)

// ChatHistoryQuery reads the conversation between the caller and one other
// user, oldest message first.
type ChatHistoryQuery struct {
	actor   kernel.Actor
	otherID kernel.UUID
	page    ports.Page

	guard guard.ConstructorGuard
}

func NewChatHistoryQuery(actor kernel.Actor, otherID kernel.UUID, page ports.Page) (ChatHistoryQuery, error) {
	if err := errors.Join(actor.Validate(), otherID.Validate(), validatePage(page)); err != nil {
		return ChatHistoryQuery{}, err
	}

	return ChatHistoryQuery{
		actor:   actor,
		otherID: otherID,
		page:    page,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q ChatHistoryQuery) Validate() error {
	return q.guard.Validate(ErrChatHistoryQueryIsNotConstructed)
}

func (q ChatHistoryQuery) Actor() kernel.Actor {
	return q.actor
}

func (q ChatHistoryQuery) OtherID() kernel.UUID {
	return q.otherID
}

func (q ChatHistoryQuery) Page() ports.Page {
	return q.page
}

// ListChatSessionsQuery lists sessions. Session managers see every session,
// everyone else only the sessions they take part in.
type ListChatSessionsQuery struct {
	actor      kernel.Actor
	activeOnly bool

	guard guard.ConstructorGuard
}

func NewListChatSessionsQuery(actor kernel.Actor, activeOnly bool) (ListChatSessionsQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListChatSessionsQuery{}, err
	}

	return ListChatSessionsQuery{
		actor:      actor,
		activeOnly: activeOnly,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ListChatSessionsQuery) Validate() error {
	return q.guard.Validate(ErrListChatSessionsQueryIsNotConstructed)
}

func (q ListChatSessionsQuery) Actor() kernel.Actor {
	return q.actor
}

func (q ListChatSessionsQuery) ActiveOnly() bool {
	return q.activeOnly
}
