package kernel_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func TestNewMoney(t *testing.T) {
	t.Run("should accept zero and positive amounts", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.RequireFromString("10.5"))
		require.NoError(t, err)
		require.NoError(t, m.Validate())
		assert.Equal(t, "10.50", m.String())

		zero, err := kernel.NewMoney(decimal.Zero)
		require.NoError(t, err)
		assert.True(t, zero.IsZero())
	})

	t.Run("should reject negative amounts", func(t *testing.T) {
		_, err := kernel.NewMoney(decimal.NewFromInt(-1))
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject malformed literals", func(t *testing.T) {
		_, err := kernel.MoneyFromString("ten")
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value should fail validation", func(t *testing.T) {
		var m kernel.Money
		assert.ErrorIs(t, m.Validate(), kernel.ErrMoneyIsNotConstructed)
	})
}

func TestMoneyArithmetic(t *testing.T) {
	price := mustMoney(t, "10")

	t.Run("MulQuantity and Add", func(t *testing.T) {
		total := price.MulQuantity(2).Add(mustMoney(t, "0.99"))
		assert.True(t, total.IsEqual(mustMoney(t, "20.99")))
	})

	t.Run("Sub should clamp at zero", func(t *testing.T) {
		assert.True(t, price.Sub(mustMoney(t, "15")).IsZero())
		assert.Equal(t, "7.50", price.Sub(mustMoney(t, "2.5")).String())
	})

	t.Run("IsEqual ignores scale", func(t *testing.T) {
		assert.True(t, mustMoney(t, "10").IsEqual(mustMoney(t, "10.000")))
	})
}

func TestMoneyInclusiveTax(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		rate   string
		want   string
	}{
		{"twenty percent of twenty", "20", "20", "3.33"},
		{"ten percent of eleven", "11", "10", "1.00"},
		{"rounds half away from zero", "0.21", "5", "0.01"},
		{"zero rate", "20", "0", "0.00"},
		{"negative rate treated as zero", "20", "-5", "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tax := mustMoney(t, tt.amount).InclusiveTax(decimal.RequireFromString(tt.rate))
			assert.Equal(t, tt.want, tax.String())
		})
	}
}
