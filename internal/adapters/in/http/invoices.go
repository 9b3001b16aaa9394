package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/invoice"

	"github.com/labstack/echo/v4"
)

// ListInvoices handles GET /api/v1/invoices.
func (s *Server) ListInvoices(ctx echo.Context) error {
	page, err := bindPage(ctx)
	if err != nil {
		return badRequest(ctx, "invalid query parameter", err)
	}
	query, err := queries.NewListInvoicesQuery(actorFrom(ctx), page)
	if err != nil {
		return s.fail(ctx, err)
	}
	list, err := s.h.ListInvoices.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, mapSlice(list, invoiceFromDomain))
}

// GetInvoice handles GET /api/v1/invoices/{id}.
func (s *Server) GetInvoice(ctx echo.Context) error {
	id, err := bindID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid invoice id", err)
	}
	query, err := queries.NewGetInvoiceQuery(actorFrom(ctx), id)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.getInvoice(ctx, query)
}

// GetOrderInvoice handles GET /api/v1/orders/{id}/invoice.
func (s *Server) GetOrderInvoice(ctx echo.Context) error {
	id, err := bindID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid order id", err)
	}
	query, err := queries.NewGetInvoiceByOrderQuery(actorFrom(ctx), id)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.getInvoice(ctx, query)
}

func (s *Server) getInvoice(ctx echo.Context, query queries.GetInvoiceQuery) error {
	inv, err := s.h.GetInvoice.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, invoiceFromDomain(inv))
}

// UpdateInvoice handles PATCH /api/v1/invoices/{id}.
func (s *Server) UpdateInvoice(ctx echo.Context) error {
	id, err := bindID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid invoice id", err)
	}
	var body UpdateInvoiceRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body", err)
	}
	var status *invoice.Status
	if body.Status != nil {
		parsed, err := invoice.ParseStatus(*body.Status)
		if err != nil {
			return s.fail(ctx, err)
		}
		status = &parsed
	}

	cmd, err := commands.NewUpdateInvoiceCommand(actorFrom(ctx), id, status, body.PaidAt, body.SentAt)
	if err != nil {
		return s.fail(ctx, err)
	}
	inv, err := s.h.UpdateInvoice.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, invoiceFromDomain(inv))
}
