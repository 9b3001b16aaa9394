package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/core/ports"
)

// ListReturnsQueryHandler serves admins and the store that owns the order.
type ListReturnsQueryHandler struct {
	orders  ports.OrderReader
	returns ports.ReturnReader
}

func NewListReturnsQueryHandler(orders ports.OrderReader, returns ports.ReturnReader) ListReturnsQueryHandler {
	return ListReturnsQueryHandler{orders: orders, returns: returns}
}

func (h ListReturnsQueryHandler) Handle(ctx context.Context, query ListReturnsQuery) ([]*returns.Return, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	o, err := h.orders.FindOrder(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}
	if err = o.AuthorizeReturns(query.Actor()); err != nil {
		return nil, err
	}

	return h.returns.ListReturnsByOrder(ctx, o.ID())
}
