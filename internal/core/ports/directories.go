package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/user"

	"github.com/shopspring/decimal"
)

// UserDirectory reads accounts owned by the identity service.
type UserDirectory interface {
	// Get returns an ObjectNotFoundError for unknown users.
	Get(ctx context.Context, id kernel.UUID) (user.User, error)

	// ListByRole returns the active users holding role.
	ListByRole(ctx context.Context, role kernel.Role) ([]user.User, error)
}

// TaxRateResolver resolves a tax reference to a percentage, e.g. 19 for 19%.
// Rates are not validated.
type TaxRateResolver interface {
	Rate(ctx context.Context, taxID kernel.UUID) (decimal.Decimal, error)
}
