package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/chat"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ListChatSessions handles GET /api/v1/chat/sessions.
func (s *Server) ListChatSessions(ctx echo.Context) error {
	activeOnly, err := bindFlag(ctx, "activeOnly")
	if err != nil {
		return badRequest(ctx, "invalid query parameter", err)
	}
	query, err := queries.NewListChatSessionsQuery(actorFrom(ctx), activeOnly)
	if err != nil {
		return s.fail(ctx, err)
	}
	list, err := s.h.ListSessions.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, mapSlice(list, sessionFromDomain))
}

// OpenChatSession handles POST /api/v1/chat/sessions.
func (s *Server) OpenChatSession(ctx echo.Context) error {
	var body OpenChatSessionRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body", err)
	}
	if len(body.Participants) != 2 {
		return s.fail(ctx, errs.NewValueIsOutOfRangeError("participants", len(body.Participants), 2, 2))
	}
	var participants [2]kernel.UUID
	for i, p := range body.Participants {
		id, err := toKernelID(p)
		if err != nil {
			return s.fail(ctx, err)
		}
		participants[i] = id
	}
	kind, err := chat.ParseSessionType(body.Type)
	if err != nil {
		return s.fail(ctx, err)
	}
	orderID, err := optionalKernelID(body.OrderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewOpenChatSessionCommand(actorFrom(ctx), participants, kind, orderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	session, err := s.h.OpenSession.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, sessionFromDomain(session))
}

// CloseChatSession handles POST /api/v1/chat/sessions/{id}/close.
func (s *Server) CloseChatSession(ctx echo.Context) error {
	id, err := bindID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid session id", err)
	}
	cmd, err := commands.NewCloseChatSessionCommand(actorFrom(ctx), id)
	if err != nil {
		return s.fail(ctx, err)
	}
	session, err := s.h.CloseSession.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, sessionFromDomain(session))
}

// SendMessage handles POST /api/v1/messages.
func (s *Server) SendMessage(ctx echo.Context) error {
	var body SendMessageRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body", err)
	}
	receiverID, err := toKernelID(body.ReceiverID)
	if err != nil {
		return s.fail(ctx, err)
	}
	orderID, err := optionalKernelID(body.OrderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewSendMessageCommand(actorFrom(ctx), receiverID, body.Content, orderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	m, err := s.h.SendMessage.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, messageFromDomain(m))
}

// ChatHistory handles GET /api/v1/messages/{userId}.
func (s *Server) ChatHistory(ctx echo.Context) error {
	otherID, err := bindID(ctx, "userId")
	if err != nil {
		return badRequest(ctx, "invalid user id", err)
	}
	page, err := bindPage(ctx)
	if err != nil {
		return badRequest(ctx, "invalid query parameter", err)
	}
	query, err := queries.NewChatHistoryQuery(actorFrom(ctx), otherID, page)
	if err != nil {
		return s.fail(ctx, err)
	}
	messages, err := s.h.ChatHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, mapSlice(messages, messageFromDomain))
}
