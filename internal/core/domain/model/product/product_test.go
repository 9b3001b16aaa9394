package product_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProduct(t *testing.T, stock int, status product.Status) *product.Product {
	t.Helper()
	price, err := kernel.MoneyFromString("10")
	require.NoError(t, err)
	p, err := product.NewProduct(kernel.NewUUID(), "Widget", price, stock, status, nil)
	require.NoError(t, err)
	return p
}

func TestNewProduct(t *testing.T) {
	t.Run("should normalize status against stock", func(t *testing.T) {
		p := newProduct(t, 0, product.Active)
		assert.Equal(t, product.OutOfStock, p.Status())
	})

	t.Run("should keep manual override with zero stock", func(t *testing.T) {
		p := newProduct(t, 0, product.Draft)
		assert.Equal(t, product.Draft, p.Status())
	})

	t.Run("should collect every validation error", func(t *testing.T) {
		p, err := product.NewProduct(kernel.UUID{}, " ", kernel.Money{}, -1, product.Unknown, nil)
		require.Error(t, err)
		assert.Nil(t, p)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "name")
		assert.Contains(t, err.Error(), "Money must be created")
		assert.Contains(t, err.Error(), "-1 is negative")
		assert.Contains(t, err.Error(), "product status")
	})
}

func TestProductReserve(t *testing.T) {
	t.Run("should decrement stock", func(t *testing.T) {
		p := newProduct(t, 5, product.Active)
		require.NoError(t, p.Reserve(2))
		assert.Equal(t, 3, p.Stock())
		assert.Equal(t, product.Active, p.Status())
	})

	t.Run("should flip to out of stock on depletion", func(t *testing.T) {
		p := newProduct(t, 2, product.Active)
		require.NoError(t, p.Reserve(2))
		assert.Equal(t, 0, p.Stock())
		assert.Equal(t, product.OutOfStock, p.Status())
	})

	t.Run("should fail without touching stock when short", func(t *testing.T) {
		p := newProduct(t, 1, product.Active)
		err := p.Reserve(2)
		require.Error(t, err)

		var stockErr *errs.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, 2, stockErr.Requested)
		assert.Equal(t, 1, stockErr.Available)
		assert.Equal(t, 1, p.Stock())
	})

	t.Run("should reject non-positive quantity", func(t *testing.T) {
		p := newProduct(t, 1, product.Active)
		assert.ErrorIs(t, p.Reserve(0), errs.ErrValueIsOutOfRange)
	})
}

func TestProductAdjust(t *testing.T) {
	tests := []struct {
		name       string
		stock      int
		status     product.Status
		delta      int
		wantStock  int
		wantStatus product.Status
	}{
		{"restock reactivates", 0, product.OutOfStock, 3, 3, product.Active},
		{"negative clamps to zero", 2, product.Active, -5, 0, product.OutOfStock},
		{"inactive stays inactive while stocked", 2, product.Inactive, 1, 3, product.Inactive},
		{"inactive goes out of stock at zero", 2, product.Inactive, -2, 0, product.OutOfStock},
		{"discontinued ignores depletion", 1, product.Discontinued, -1, 0, product.Discontinued},
		{"draft ignores restock", 0, product.Draft, 4, 4, product.Draft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newProduct(t, tt.stock, tt.status)
			p.Adjust(tt.delta)
			assert.Equal(t, tt.wantStock, p.Stock())
			assert.Equal(t, tt.wantStatus, p.Status())
		})
	}

	t.Run("stock and status stay consistent over a sequence", func(t *testing.T) {
		p := newProduct(t, 3, product.Active)
		for _, delta := range []int{-1, -4, 2, -2, 7, -7, 1} {
			p.Adjust(delta)
			assert.GreaterOrEqual(t, p.Stock(), 0)
			assert.Equal(t, p.Stock() == 0, p.Status() == product.OutOfStock)
		}
	})
}

func TestParseStatus(t *testing.T) {
	s, err := product.ParseStatus("out_of_stock")
	require.NoError(t, err)
	assert.Equal(t, product.OutOfStock, s)

	_, err = product.ParseStatus("unknown")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestProductClone(t *testing.T) {
	taxID := kernel.NewUUID()
	price, _ := kernel.MoneyFromString("1")
	p, err := product.NewProduct(kernel.NewUUID(), "Tea", price, 1, product.Active, &taxID)
	require.NoError(t, err)

	c := p.Clone()
	c.Adjust(-1)
	assert.Equal(t, 1, p.Stock())
	assert.True(t, c.TaxID().IsEqual(*p.TaxID()))
	assert.NotSame(t, p.TaxID(), c.TaxID())
}
