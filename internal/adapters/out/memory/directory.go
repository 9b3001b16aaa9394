package memory

import (
	"context"
	"sort"
	"sync"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/user"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	_ ports.UserDirectory   = &Directory{}
	_ ports.TaxRateResolver = &Directory{}
)

// Directory stands in for the identity and tax services.
type Directory struct {
	mu    sync.RWMutex
	users map[kernel.UUID]user.User
	taxes map[kernel.UUID]decimal.Decimal
}

func NewDirectory() *Directory {
	return &Directory{
		users: make(map[kernel.UUID]user.User),
		taxes: make(map[kernel.UUID]decimal.Decimal),
	}
}

// PutUser adds or replaces a user.
func (d *Directory) PutUser(u user.User) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users[u.ID] = u
}

// PutTax adds or replaces a tax rate.
func (d *Directory) PutTax(id kernel.UUID, rate decimal.Decimal) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.taxes[id] = rate
}

// ForgetTax drops a tax rate, leaving products that reference it dangling.
func (d *Directory) ForgetTax(id kernel.UUID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.taxes, id)
}

func (d *Directory) Get(_ context.Context, id kernel.UUID) (user.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	u, ok := d.users[id]
	if !ok {
		return user.User{}, errs.NewObjectNotFoundError("user", id)
	}
	return u, nil
}

func (d *Directory) ListByRole(_ context.Context, role kernel.Role) ([]user.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var result []user.User
	for _, u := range d.users {
		if u.Role == role && u.Active {
			result = append(result, u)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID.String() < result[j].ID.String()
	})
	return result, nil
}

func (d *Directory) Rate(_ context.Context, taxID kernel.UUID) (decimal.Decimal, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	rate, ok := d.taxes[taxID]
	if !ok {
		return decimal.Zero, errs.NewObjectNotFoundError("tax", taxID)
	}
	return rate, nil
}
