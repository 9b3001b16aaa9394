package http

import (
	"fmt"
	"net/http"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Identity headers set by the trusted gateway in front of the service.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUserRole = "X-User-Role"
)

const actorKey = "actor"

// actorFromHeaders rebuilds the caller from the gateway headers.
func actorFromHeaders(h http.Header) (kernel.Actor, error) {
	rawID := strings.TrimSpace(h.Get(HeaderUserID))
	rawRole := strings.TrimSpace(h.Get(HeaderUserRole))
	if rawID == "" || rawRole == "" {
		return kernel.Actor{}, errs.NewUnauthenticatedError("identity headers are missing")
	}

	id, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return kernel.Actor{}, errs.NewUnauthenticatedError(fmt.Sprintf("%s is not a UUID", HeaderUserID))
	}
	role, err := kernel.ParseRole(strings.ToLower(rawRole))
	if err != nil {
		return kernel.Actor{}, errs.NewUnauthenticatedError(fmt.Sprintf("%s is not a known role", HeaderUserRole))
	}
	return kernel.NewActor(id, role)
}

// Authenticate rejects requests without a valid identity and stores the actor
// on the echo context.
func (s *Server) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		actor, err := actorFromHeaders(ctx.Request().Header)
		if err != nil {
			return s.fail(ctx, err)
		}
		ctx.Set(actorKey, actor)
		return next(ctx)
	}
}

// RequireAny lets the request through when the actor holds at least one of caps.
func (s *Server) RequireAny(caps ...kernel.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			actor := actorFrom(ctx)
			for _, c := range caps {
				if actor.Can(c) {
					return next(ctx)
				}
			}
			return s.fail(ctx, errs.NewForbiddenError(
				fmt.Sprintf("role %s cannot perform this operation", actor.Role())))
		}
	}
}

func actorFrom(ctx echo.Context) kernel.Actor {
	actor, _ := ctx.Get(actorKey).(kernel.Actor)
	return actor
}
