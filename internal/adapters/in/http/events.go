package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const keepAliveInterval = 25 * time.Second

// StreamEvents handles GET /api/v1/events. The caller's real-time events are
// relayed as Server-Sent Events until the client disconnects.
func (s *Server) StreamEvents(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	actor := actorFrom(ctx)

	events, err := s.events.Subscribe(reqCtx, actor.UserID())
	if err != nil {
		return s.fail(ctx, fmt.Errorf("subscribe to events: %w", err))
	}

	res := ctx.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set(echo.HeaderConnection, "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-reqCtx.Done():
			return nil
		case <-ticker.C:
			if _, err = fmt.Fprint(res, ": keep-alive\n\n"); err != nil {
				return nil
			}
			res.Flush()
		case event, ok := <-events:
			if !ok {
				return nil
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				s.logger.Warn("drop unencodable event", zap.String("type", event.Type), zap.Error(err))
				continue
			}
			if _, err = fmt.Fprintf(res, "event: %s\ndata: %s\n\n", event.Type, data); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}
