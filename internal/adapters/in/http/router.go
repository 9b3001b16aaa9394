package http

import (
	"net/http"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// NewRouter mounts the API on a new echo instance. Every /api/v1 request is
// authenticated, then validated against doc, then checked for capabilities.
func NewRouter(s *Server, doc *openapi3.T) (*echo.Echo, error) {
	validate, err := ValidateRequests(doc)
	if err != nil {
		return nil, err
	}
	RegisterSwagger()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(echo.WrapMiddleware(otelhttp.NewMiddleware("fulfillment")))

	e.GET("/health", func(ctx echo.Context) error {
		return ctx.String(http.StatusOK, "Healthy")
	})
	e.GET("/openapi.json", func(ctx echo.Context) error {
		return ctx.Blob(http.StatusOK, echo.MIMEApplicationJSON, openAPIDocument)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1", s.Authenticate, validate)
	can := s.RequireAny

	api.POST("/orders", s.PlaceOrder, can(kernel.CapPlaceOrder))
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.GET("/order-numbers/:number", s.GetOrderByNumber)
	api.PUT("/orders/:id/assign", s.AssignDelivery, can(kernel.CapDispatchOrders))
	api.POST("/orders/:id/pickup", s.ConfirmPickup, can(kernel.CapDeliverOrders))
	api.PUT("/orders/:id/status", s.UpdateOrderStatus, can(kernel.CapDispatchOrders, kernel.CapDeliverOrders))
	api.POST("/orders/:id/cancel", s.CancelOrder, can(kernel.CapCancelOrders))
	api.POST("/orders/:id/finalize-return", s.FinalizeReturn, can(kernel.CapRequestReturns))
	api.DELETE("/orders/:id", s.DeleteOrder, can(kernel.CapDispatchOrders))
	api.POST("/orders/:id/returns", s.RequestReturn, can(kernel.CapRequestReturns))
	api.GET("/orders/:id/returns", s.ListReturns)
	api.GET("/orders/:id/invoice", s.GetOrderInvoice)
	api.PUT("/returns/:id/status", s.UpdateReturnStatus)

	api.GET("/invoices", s.ListInvoices, can(kernel.CapViewInvoices))
	api.GET("/invoices/:id", s.GetInvoice, can(kernel.CapViewInvoices))
	api.PATCH("/invoices/:id", s.UpdateInvoice, can(kernel.CapManageInvoices))

	api.GET("/notifications", s.ListNotifications)
	api.PUT("/notifications/read-all", s.MarkAllNotificationsRead)
	api.PUT("/notifications/:id/read", s.MarkNotificationRead)

	api.GET("/chat/sessions", s.ListChatSessions)
	api.POST("/chat/sessions", s.OpenChatSession, can(kernel.CapManageChatSessions))
	api.POST("/chat/sessions/:id/close", s.CloseChatSession, can(kernel.CapManageChatSessions))
	api.POST("/messages", s.SendMessage)
	api.GET("/messages/:userId", s.ChatHistory)

	if s.events != nil {
		api.GET("/events", s.StreamEvents)
	}
	return e, nil
}
