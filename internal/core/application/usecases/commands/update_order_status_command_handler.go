package commands

import (
	"context"

	"fulfillment/internal/core/application/notifications"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"go.uber.org/zap"
)

// UpdateOrderStatusCommandHandler applies a transition-table move.
//
// The status change, history entry, restock on cancellation and notification
// records commit together. When the order reaches delivered, the invoice is
// generated after commit in its own transaction; a failure there is logged and
// left to the reconciliation job, never reported as a failed status update.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderingUoWFactory
	invoices   GenerateInvoiceCommandHandler
	fanout     *notifications.FanOut
	clock      ports.Clock
	logger     *zap.Logger
}

func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderingUoWFactory,
	invoices GenerateInvoiceCommandHandler,
	fanout *notifications.FanOut,
	clock ports.Clock,
	logger *zap.Logger,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		invoices:   invoices,
		fanout:     fanout,
		clock:      clock,
		logger:     logger.With(zap.String("component", "update_order_status")),
	}
}

func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	actor := cmd.Actor()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = o.AuthorizeStatusChange(actor); err != nil {
		return nil, err
	}

	batch := notifications.NewBatch()
	if cmd.Target() == order.Cancelled {
		if err = o.Cancel("", actor.UserID(), h.clock.Now()); err != nil {
			return nil, err
		}
		if err = restock(ctx, uow.ProductRepository(), o.Items()); err != nil {
			return nil, err
		}
		err = announceCancellation(ctx, h.fanout, batch, o, actor.UserID())
	} else {
		if err = o.ChangeStatus(cmd.Target(), actor.UserID(), h.clock.Now()); err != nil {
			return nil, err
		}
		err = announceStatusChange(ctx, h.fanout, batch, o, actor.UserID())
	}
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = h.fanout.Persist(ctx, uow.NotificationRepository(), batch); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.fanout.Deliver(ctx, batch)

	if o.Status() == order.Delivered {
		h.issueInvoice(ctx, o)
	}
	return o, nil
}

func (h UpdateOrderStatusCommandHandler) issueInvoice(ctx context.Context, o *order.Order) {
	cmd, err := NewGenerateInvoiceCommand(o.ID())
	if err != nil {
		h.logger.Error("build invoice command", zap.Stringer("order_id", o.ID()), zap.Error(err))
		return
	}

	inv, created, err := h.invoices.Handle(ctx, cmd)
	if err != nil {
		h.logger.Error("invoice generation failed, left to reconciliation",
			zap.Stringer("order_id", o.ID()),
			zap.String("order_number", o.Number()),
			zap.Error(err))
		return
	}
	if created {
		h.logger.Info("invoice issued",
			zap.String("order_number", o.Number()),
			zap.String("invoice_number", inv.Number()))
	}
}
