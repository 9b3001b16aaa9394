package commands

import (
	"context"

	"fulfillment/internal/core/application/notifications"
	"fulfillment/internal/core/domain/model/chat"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// SendMessageCommandHandler consults the chat gate, appends the message and
// pushes it to the receiver, echoing it to the sender's other connections.
// Chat is its own log, so no notification record is written; push is
// at-most-once.
type SendMessageCommandHandler struct {
	uowFactory ChatUoWFactory
	users      ports.UserDirectory
	gate       services.ChatGate
	fanout     *notifications.FanOut
	clock      ports.Clock
}

func NewSendMessageCommandHandler(
	uowFactory ChatUoWFactory,
	users ports.UserDirectory,
	fanout *notifications.FanOut,
	clock ports.Clock,
) SendMessageCommandHandler {
	return SendMessageCommandHandler{
		uowFactory: uowFactory,
		users:      users,
		gate:       services.NewChatGate(),
		fanout:     fanout,
		clock:      clock,
	}
}

func (h SendMessageCommandHandler) Handle(ctx context.Context, cmd SendMessageCommand) (*chat.Message, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	actor := cmd.Actor()
	receiver, err := h.users.Get(ctx, cmd.ReceiverID())
	if err != nil {
		return nil, err
	}

	m, err := chat.NewMessage(kernel.NewUUID(), actor.UserID(), receiver.ID, cmd.Content(), cmd.OrderID(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	var facts services.GateFacts
	if orderID := cmd.OrderID(); orderID != nil {
		if facts.Order, err = uow.OrderRepository().Get(ctx, *orderID); err != nil {
			return nil, err
		}
	}
	if facts.Sessions, err = uow.ChatSessionRepository().ListActiveBetween(ctx, actor.UserID(), receiver.ID); err != nil {
		return nil, err
	}

	sender := chat.Participant{UserID: actor.UserID(), Role: actor.Role()}
	if err = h.gate.Authorize(sender, chat.Participant{UserID: receiver.ID, Role: receiver.Role}, facts); err != nil {
		return nil, err
	}

	if err = uow.MessageRepository().Add(ctx, m); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	event := ports.PushEvent{Type: notification.NewMessage.String(), Data: MessageView(m)}
	h.fanout.Push(ctx, m.ReceiverID(), event)
	h.fanout.Push(ctx, m.SenderID(), event)
	return m, nil
}

// MessageView is the wire shape of a chat message.
func MessageView(m *chat.Message) map[string]any {
	view := map[string]any{
		"id":         m.ID().String(),
		"senderId":   m.SenderID().String(),
		"receiverId": m.ReceiverID().String(),
		"content":    m.Content(),
		"timestamp":  m.SentAt(),
	}
	if orderID := m.OrderID(); orderID != nil {
		view["orderId"] = orderID.String()
	}
	return view
}
