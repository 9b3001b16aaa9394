// Package ports defines the contracts between the fulfillment core and its
// adapters: transactional repositories, read models, directories owned by other
// services, and fire-and-forget transports.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
)

// ProductRepository is the inventory ledger's storage. Reserve and Adjust are
// single atomic updates on the product row, never read-modify-write.
type ProductRepository interface {
	// Add persists a catalog entry. Catalog CRUD lives elsewhere; this is used
	// by seeding and tests.
	Add(ctx context.Context, p *product.Product) error

	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// GetMany returns the products found among ids, in no particular order.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*product.Product, error)

	// Reserve decrements stock by quantity if and only if stock >= quantity,
	// recomputing status. Otherwise it returns an InsufficientStockError.
	Reserve(ctx context.Context, id kernel.UUID, quantity int) error

	// Adjust applies a signed delta, clamps stock at zero and recomputes status.
	Adjust(ctx context.Context, id kernel.UUID, delta int) error
}
