package commands

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/order"

	"go.uber.org/zap"
)

// ReconcileInvoicesCommandHandler backfills invoices that the post-commit
// generation after delivery did not produce. One failing order does not stop
// the rest of the batch.
type ReconcileInvoicesCommandHandler struct {
	uowFactory InvoiceUoWFactory
	generator  GenerateInvoiceCommandHandler
	logger     *zap.Logger
}

func NewReconcileInvoicesCommandHandler(
	uowFactory InvoiceUoWFactory,
	generator GenerateInvoiceCommandHandler,
	logger *zap.Logger,
) ReconcileInvoicesCommandHandler {
	return ReconcileInvoicesCommandHandler{
		uowFactory: uowFactory,
		generator:  generator,
		logger:     logger.With(zap.String("component", "invoice_reconciler")),
	}
}

// Handle returns how many invoices were created.
func (h ReconcileInvoicesCommandHandler) Handle(ctx context.Context, cmd ReconcileInvoicesCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	pending, err := h.pending(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	created := 0
	var failures []error
	for _, o := range pending {
		genCmd, err := NewGenerateInvoiceCommand(o.ID())
		if err != nil {
			failures = append(failures, err)
			continue
		}
		_, isNew, err := h.generator.Handle(ctx, genCmd)
		if err != nil {
			h.logger.Error("invoice reconciliation failed",
				zap.Stringer("order_id", o.ID()),
				zap.String("order_number", o.Number()),
				zap.Error(err))
			failures = append(failures, fmt.Errorf("order %s: %w", o.Number(), err))
			continue
		}
		if isNew {
			created++
		}
	}
	return created, errors.Join(failures...)
}

func (h ReconcileInvoicesCommandHandler) pending(ctx context.Context, limit int) ([]*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.OrderRepository().ListDeliveredWithoutInvoice(ctx, limit)
}
