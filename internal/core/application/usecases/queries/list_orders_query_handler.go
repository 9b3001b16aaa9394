package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// ListOrdersQueryHandler scopes the listing by capability:
//   - view-all roles see every order
//   - stores see the orders they placed
//   - delivery agents see the orders assigned to them
type ListOrdersQueryHandler struct {
	orders ports.OrderReader
}

func NewListOrdersQueryHandler(orders ports.OrderReader) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{orders: orders}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	actor := query.Actor()
	userID := actor.UserID()
	filter := ports.OrderFilter{Status: query.Status(), Page: query.Page()}

	switch {
	case actor.Can(kernel.CapViewAllOrders):
	case actor.Can(kernel.CapPlaceOrder):
		filter.StoreID = &userID
	case actor.Can(kernel.CapDeliverOrders):
		filter.AssignedTo = &userID
	default:
		return nil, errs.NewForbiddenError("role cannot list orders")
	}

	return h.orders.ListOrders(ctx, filter)
}
