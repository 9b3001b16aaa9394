package http

import (
	"context"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"go.uber.org/zap"
)

// Handlers groups the use cases exposed over HTTP.
type Handlers struct {
	PlaceOrder      commands.PlaceOrderCommandHandler
	AssignDelivery  commands.AssignDeliveryCommandHandler
	ConfirmPickup   commands.ConfirmPickupCommandHandler
	UpdateStatus    commands.UpdateOrderStatusCommandHandler
	CancelOrder     commands.CancelOrderCommandHandler
	FinalizeReturn  commands.FinalizeReturnCommandHandler
	SoftDeleteOrder commands.SoftDeleteOrderCommandHandler
	RequestReturn   commands.RequestReturnCommandHandler
	UpdateReturn    commands.UpdateReturnStatusCommandHandler
	UpdateInvoice   commands.UpdateInvoiceCommandHandler
	OpenSession     commands.OpenChatSessionCommandHandler
	CloseSession    commands.CloseChatSessionCommandHandler
	SendMessage     commands.SendMessageCommandHandler
	MarkRead        commands.MarkNotificationReadCommandHandler
	MarkAllRead     commands.MarkAllNotificationsReadCommandHandler

	GetOrder          queries.GetOrderQueryHandler
	ListOrders        queries.ListOrdersQueryHandler
	ListReturns       queries.ListReturnsQueryHandler
	GetInvoice        queries.GetInvoiceQueryHandler
	ListInvoices      queries.ListInvoicesQueryHandler
	ListNotifications queries.ListNotificationsQueryHandler
	ChatHistory       queries.ChatHistoryQueryHandler
	ListSessions      queries.ListChatSessionsQueryHandler
}

// EventSubscriber streams the real-time events addressed to one user.
type EventSubscriber interface {
	Subscribe(ctx context.Context, userID kernel.UUID) (<-chan ports.PushEvent, error)
}

// Server translates HTTP requests into commands and queries and maps the
// results back onto response bodies.
type Server struct {
	h      Handlers
	events EventSubscriber
	logger *zap.Logger
}

// NewServer builds the server. events may be nil, in which case the event
// stream is not offered.
func NewServer(h Handlers, events EventSubscriber, logger *zap.Logger) *Server {
	return &Server{h: h, events: events, logger: logger}
}

func bindID(ctx echo.Context, name string) (kernel.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, err
	}
	return kernel.UUIDFromString(id.String())
}

func toKernelID(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromString(id.String())
}

func optionalKernelID(id *openapi_types.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	kid, err := toKernelID(*id)
	if err != nil {
		return nil, err
	}
	return &kid, nil
}

// bindPage reads the limit and offset query parameters.
func bindPage(ctx echo.Context) (ports.Page, error) {
	var limit, offset *int
	if err := runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &limit); err != nil {
		return ports.Page{}, err
	}
	if err := runtime.BindQueryParameter("form", true, false, "offset", ctx.QueryParams(), &offset); err != nil {
		return ports.Page{}, err
	}
	page := ports.Page{}
	if limit != nil {
		page.Limit = *limit
	}
	if offset != nil {
		page.Offset = *offset
	}
	return page, nil
}

func bindFlag(ctx echo.Context, name string) (bool, error) {
	var flag *bool
	if err := runtime.BindQueryParameter("form", true, false, name, ctx.QueryParams(), &flag); err != nil {
		return false, err
	}
	return flag != nil && *flag, nil
}

func itemLines(items []ItemQuantity) ([]commands.OrderLine, error) {
	lines := make([]commands.OrderLine, 0, len(items))
	for _, item := range items {
		id, err := toKernelID(item.ProductID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, commands.OrderLine{ProductID: id, Quantity: item.Quantity})
	}
	return lines, nil
}

// PlaceOrder handles POST /api/v1/orders.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var body PlaceOrderRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body", err)
	}
	lines, err := itemLines(body.Items)
	if err != nil {
		return s.fail(ctx, err)
	}
	address, err := body.Address.toDomain()
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewPlaceOrderCommand(actorFrom(ctx), lines, address)
	if err != nil {
		return s.fail(ctx, err)
	}
	o, err := s.h.PlaceOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, orderFromDomain(o))
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context) error {
	page, err := bindPage(ctx)
	if err != nil {
		return badRequest(ctx, "invalid query parameter", err)
	}
	var status *order.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		parsed, err := order.ParseStatus(raw)
		if err != nil {
			return s.fail(ctx, err)
		}
		status = &parsed
	}

	query, err := queries.NewListOrdersQuery(actorFrom(ctx), status, page)
	if err != nil {
		return s.fail(ctx, err)
	}
	orders, err := s.h.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, mapSlice(orders, orderFromDomain))
}

// GetOrder handles GET /api/v1/orders/{id}.
func (s *Server) GetOrder(ctx echo.Context) error {
	id, err := bindID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid order id", err)
	}
	query, err := queries.NewGetOrderQuery(actorFrom(ctx), id)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.getOrder(ctx, query)
}

// GetOrderByNumber handles GET /api/v1/order-numbers/{number}.
func (s *Server) GetOrderByNumber(ctx echo.Context) error {
	query, err := queries.NewGetOrderByNumberQuery(actorFrom(ctx), ctx.Param("number"))
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.getOrder(ctx, query)
}

func (s *Server) getOrder(ctx echo.Context, query queries.GetOrderQuery) error {
	o, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orderFromDomain(o))
}

// AssignDelivery handles PUT /api/v1/orders/{id}/assign.
func (s *Server) AssignDelivery(ctx echo.Context) error {
	id, err := bindID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid order id", err)
	}
	var body AssignDeliveryRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body", err)
	}
	agentID, err := toKernelID(body.AgentID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewAssignDeliveryCommand(actorFrom(ctx), id, agentID)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.respondOrder(ctx, func(c context.Context) (*order.Order, error) {
		return s.h.AssignDelivery.Handle(c, cmd)
	})
}

// ConfirmPickup handles POST /api/v1/orders/{id}/pickup.
func (s *Server) ConfirmPickup(ctx echo.Context) error {
	id, err := bindID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid order id", err)
	}
	cmd, err := commands.NewConfirmPickupCommand(actorFrom(ctx), id)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.respondOrder(ctx, func(c context.Context) (*order.Order, error) {
		return s.h.ConfirmPickup.Handle(c, cmd)
	})
}

// UpdateOrderStatus handles PUT /api/v1/orders/{id}/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	id, err := bindID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid order id", err)
	}
	var body UpdateStatusRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body", err)
	}
	target, err := order.ParseStatus(body.Status)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(actorFrom(ctx), id, target)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.respondOrder(ctx, func(c context.Context) (*order.Order, error) {
		return s.h.UpdateStatus.Handle(c, cmd)
	})
}

// CancelOrder handles POST /api/v1/orders/{id}/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	id, err := bindID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid order id", err)
	}
	var body CancelOrderRequest
	if ctx.Request().ContentLength != 0 {
		if err = ctx.Bind(&body); err != nil {
			return badRequest(ctx, "invalid request body", err)
		}
	}

	cmd, err := commands.NewCancelOrderCommand(actorFrom(ctx), id, body.Reason)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.respondOrder(ctx, func(c context.Context) (*order.Order, error) {
		return s.h.CancelOrder.Handle(c, cmd)
	})
}

// FinalizeReturn handles POST /api/v1/orders/{id}/finalize-return.
func (s *Server) FinalizeReturn(ctx echo.Context) error {
	id, err := bindID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid order id", err)
	}
	cmd, err := commands.NewFinalizeReturnCommand(actorFrom(ctx), id)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.respondOrder(ctx, func(c context.Context) (*order.Order, error) {
		return s.h.FinalizeReturn.Handle(c, cmd)
	})
}

// DeleteOrder handles DELETE /api/v1/orders/{id}.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	id, err := bindID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid order id", err)
	}
	cmd, err := commands.NewSoftDeleteOrderCommand(actorFrom(ctx), id)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.SoftDeleteOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) respondOrder(ctx echo.Context, run func(context.Context) (*order.Order, error)) error {
	o, err := run(ctx.Request().Context())
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orderFromDomain(o))
}

// RequestReturn handles POST /api/v1/orders/{id}/returns.
func (s *Server) RequestReturn(ctx echo.Context) error {
	id, err := bindID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid order id", err)
	}
	var body RequestReturnRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body", err)
	}
	items := make([]returns.Item, 0, len(body.Items))
	for _, item := range body.Items {
		productID, err := toKernelID(item.ProductID)
		if err != nil {
			return s.fail(ctx, err)
		}
		items = append(items, returns.Item{ProductID: productID, Quantity: item.Quantity})
	}

	cmd, err := commands.NewRequestReturnCommand(actorFrom(ctx), id, items)
	if err != nil {
		return s.fail(ctx, err)
	}
	r, err := s.h.RequestReturn.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, returnFromDomain(r))
}

// ListReturns handles GET /api/v1/orders/{id}/returns.
func (s *Server) ListReturns(ctx echo.Context) error {
	id, err := bindID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid order id", err)
	}
	query, err := queries.NewListReturnsQuery(actorFrom(ctx), id)
	if err != nil {
		return s.fail(ctx, err)
	}
	list, err := s.h.ListReturns.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, mapSlice(list, returnFromDomain))
}

// UpdateReturnStatus handles PUT /api/v1/returns/{id}/status.
func (s *Server) UpdateReturnStatus(ctx echo.Context) error {
	id, err := bindID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid return id", err)
	}
	var body UpdateStatusRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body", err)
	}
	target, err := returns.ParseStatus(body.Status)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewUpdateReturnStatusCommand(actorFrom(ctx), id, target)
	if err != nil {
		return s.fail(ctx, err)
	}
	r, err := s.h.UpdateReturn.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, returnFromDomain(r))
}
