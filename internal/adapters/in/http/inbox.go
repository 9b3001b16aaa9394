package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// ListNotifications handles GET /api/v1/notifications.
func (s *Server) ListNotifications(ctx echo.Context) error {
	page, err := bindPage(ctx)
	if err != nil {
		return badRequest(ctx, "invalid query parameter", err)
	}
	unreadOnly, err := bindFlag(ctx, "unreadOnly")
	if err != nil {
		return badRequest(ctx, "invalid query parameter", err)
	}

	query, err := queries.NewListNotificationsQuery(actorFrom(ctx), unreadOnly, page)
	if err != nil {
		return s.fail(ctx, err)
	}
	list, err := s.h.ListNotifications.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, mapSlice(list, notificationFromDomain))
}

// MarkNotificationRead handles PUT /api/v1/notifications/{id}/read.
func (s *Server) MarkNotificationRead(ctx echo.Context) error {
	id, err := bindID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid notification id", err)
	}
	cmd, err := commands.NewMarkNotificationReadCommand(actorFrom(ctx), id)
	if err != nil {
		return s.fail(ctx, err)
	}
	n, err := s.h.MarkRead.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, notificationFromDomain(n))
}

// MarkAllNotificationsRead handles PUT /api/v1/notifications/read-all.
func (s *Server) MarkAllNotificationsRead(ctx echo.Context) error {
	cmd, err := commands.NewMarkAllNotificationsReadCommand(actorFrom(ctx))
	if err != nil {
		return s.fail(ctx, err)
	}
	updated, err := s.h.MarkAllRead.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, MarkAllReadResponse{Updated: updated})
}
