package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/returns"
)

type ReturnRepository interface {
	Add(ctx context.Context, r *returns.Return) error
	// Update writes r only while the stored status is still from; otherwise
	// it returns a ConflictError.
	Update(ctx context.Context, r *returns.Return, from returns.Status) error
	Get(ctx context.Context, id kernel.UUID) (*returns.Return, error)

	// GetForUpdate loads the return and locks it until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*returns.Return, error)

	// ListByOrder returns every return of an order, oldest first.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*returns.Return, error)
}
