package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
)

type InvoiceRepository interface {
	// Add persists a new invoice. A second invoice for the same order, or a
	// duplicate number, yields a ConflictError.
	Add(ctx context.Context, inv *invoice.Invoice) error

	Update(ctx context.Context, inv *invoice.Invoice) error
	Get(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error)

	// GetByOrder returns an ObjectNotFoundError when the order has no invoice.
	GetByOrder(ctx context.Context, orderID kernel.UUID) (*invoice.Invoice, error)
}
