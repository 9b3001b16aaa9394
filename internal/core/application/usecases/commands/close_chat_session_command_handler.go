package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/chat"
	"fulfillment/internal/core/ports"
)

// CloseChatSessionCommandHandler deactivates a session. Closing twice is a no-op.
type CloseChatSessionCommandHandler struct {
	uowFactory ChatUoWFactory
	clock      ports.Clock
}

func NewCloseChatSessionCommandHandler(uowFactory ChatUoWFactory, clock ports.Clock) CloseChatSessionCommandHandler {
	return CloseChatSessionCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h CloseChatSessionCommandHandler) Handle(ctx context.Context, cmd CloseChatSessionCommand) (*chat.Session, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sessionRepo := uow.ChatSessionRepository()
	s, err := sessionRepo.Get(ctx, cmd.SessionID())
	if err != nil {
		return nil, err
	}

	if err = s.Close(cmd.Actor(), h.clock.Now()); err != nil {
		return nil, err
	}

	if err = sessionRepo.Update(ctx, s); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return s, nil
}
