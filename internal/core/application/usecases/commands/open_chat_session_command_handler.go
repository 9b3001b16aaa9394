package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/chat"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// OpenChatSessionCommandHandler opens a session after resolving both
// participants' roles through the user directory.
type OpenChatSessionCommandHandler struct {
	uowFactory ChatUoWFactory
	users      ports.UserDirectory
	clock      ports.Clock
}

func NewOpenChatSessionCommandHandler(
	uowFactory ChatUoWFactory,
	users ports.UserDirectory,
	clock ports.Clock,
) OpenChatSessionCommandHandler {
	return OpenChatSessionCommandHandler{
		uowFactory: uowFactory,
		users:      users,
		clock:      clock,
	}
}

func (h OpenChatSessionCommandHandler) Handle(ctx context.Context, cmd OpenChatSessionCommand) (*chat.Session, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	actor := cmd.Actor()
	if !actor.Can(kernel.CapManageChatSessions) {
		return nil, errs.NewForbiddenError("only admins can open chat sessions")
	}

	ids := cmd.Participants()
	var participants [2]chat.Participant
	for i, id := range ids {
		u, err := h.users.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		participants[i] = chat.Participant{UserID: u.ID, Role: u.Role}
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if orderID := cmd.OrderID(); orderID != nil {
		if _, err := uow.OrderRepository().Get(ctx, *orderID); err != nil {
			return nil, err
		}
	}

	s, err := chat.OpenSession(kernel.NewUUID(), actor, participants[0], participants[1], cmd.Type(), cmd.OrderID(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	if err = uow.ChatSessionRepository().Add(ctx, s); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return s, nil
}
