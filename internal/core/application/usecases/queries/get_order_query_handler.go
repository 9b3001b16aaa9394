package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// GetOrderQueryHandler returns an order the caller may see: staff with
// view-all access, the owning store or the assigned agent.
type GetOrderQueryHandler struct {
	orders ports.OrderReader
}

func NewGetOrderQueryHandler(orders ports.OrderReader) GetOrderQueryHandler {
	return GetOrderQueryHandler{orders: orders}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		o   *order.Order
		err error
	)
	if id := query.OrderID(); id != nil {
		o, err = h.orders.FindOrder(ctx, *id)
	} else {
		o, err = h.orders.FindOrderByNumber(ctx, query.Number())
	}
	if err != nil {
		return nil, err
	}

	if !o.CanBeViewedBy(query.Actor()) {
		return nil, errs.NewForbiddenError("order is not visible to the caller")
	}
	return o, nil
}
