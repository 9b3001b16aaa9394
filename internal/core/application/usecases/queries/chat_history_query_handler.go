package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/chat"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
)

type ChatHistoryQueryHandler struct {
	chats ports.ChatReader
}

func NewChatHistoryQueryHandler(chats ports.ChatReader) ChatHistoryQueryHandler {
	return ChatHistoryQueryHandler{chats: chats}
}

func (h ChatHistoryQueryHandler) Handle(ctx context.Context, query ChatHistoryQuery) ([]*chat.Message, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.chats.ListMessagesBetween(ctx, query.Actor().UserID(), query.OtherID(), query.Page())
}

type ListChatSessionsQueryHandler struct {
	chats ports.ChatReader
}

func NewListChatSessionsQueryHandler(chats ports.ChatReader) ListChatSessionsQueryHandler {
	return ListChatSessionsQueryHandler{chats: chats}
}

func (h ListChatSessionsQueryHandler) Handle(ctx context.Context, query ListChatSessionsQuery) ([]*chat.Session, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	actor := query.Actor()
	var participant *kernel.UUID
	if !actor.Can(kernel.CapManageChatSessions) {
		id := actor.UserID()
		participant = &id
	}
	return h.chats.ListSessions(ctx, participant, query.ActiveOnly())
}
