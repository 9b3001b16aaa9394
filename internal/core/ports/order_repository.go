package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Soft-deleted orders behave as missing for every method.
type OrderRepository interface {
	// Add persists a new order. A duplicate order number yields a ConflictError.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes guarded by the aggregate's version. When another
	// writer got there first it returns a ConflictError and writes nothing.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks it until the transaction ends.
	// Used where a decision reads state owned by other aggregates (returns).
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListDeliveredWithoutInvoice returns up to limit delivered or returned
	// orders that have no invoice yet, oldest first.
	ListDeliveredWithoutInvoice(ctx context.Context, limit int) ([]*order.Order, error)
}
