package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeLineTotal(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		price    string
		discount string
		want     string
	}{
		{"no discount", 3, "4.50", "0", "13.50"},
		{"ten percent", 2, "10.00", "10", "18.00"},
		{"full discount", 5, "7.25", "100", "0.00"},
		{"rounds half away from zero", 1, "0.125", "0", "0.13"},
		{"thirds", 1, "10.00", "33.333", "6.67"},
		{"over hundred percent is not clamped", 1, "10.00", "150", "-5.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeLineTotal(tt.quantity, dec(tt.price), dec(tt.discount))
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestComputeLineTotalMonotonic(t *testing.T) {
	quantities := []int{1, 2, 7, 40}
	prices := []string{"0.01", "1.99", "10.00", "249.95"}
	discounts := []string{"0", "5", "12.5", "50", "99.99", "100"}

	for _, q := range quantities {
		for _, p := range prices {
			price := dec(p)
			full := Round2(decimal.NewFromInt(int64(q)).Mul(price))
			prev := full
			for _, d := range discounts {
				got := ComputeLineTotal(q, price, dec(d))
				assert.False(t, got.IsNegative(), "q=%d p=%s d=%s", q, p, d)
				assert.True(t, got.LessThanOrEqual(full), "q=%d p=%s d=%s", q, p, d)
				assert.True(t, got.LessThanOrEqual(prev), "q=%d p=%s d=%s", q, p, d)
				prev = got
			}
			assert.True(t, ComputeLineTotal(q, price, decimal.Zero).Equal(full))
			assert.True(t, ComputeLineTotal(q, price, hundred).IsZero())
		}
	}
}

func TestCoerceQuantity(t *testing.T) {
	tests := map[string]int{
		"":     1,
		"abc":  1,
		"0":    1,
		"-3":   1,
		"4":    4,
		" 12 ": 12,
		"2.9":  2,
		"0.5":  1,

		"1000000":              MaxQuantity,
		"1000000.9":            MaxQuantity,
		"1000001":              1,
		"18446744073709551621": 1,
		"1e30":                 1,
	}
	for raw, want := range tests {
		assert.Equal(t, want, CoerceQuantity(raw), "raw=%q", raw)
	}
}

func TestCoerceUnitPrice(t *testing.T) {
	assert.True(t, CoerceUnitPrice("").IsZero())
	assert.True(t, CoerceUnitPrice("x1").IsZero())
	assert.True(t, CoerceUnitPrice("-4").IsZero())
	assert.Equal(t, "12.50", CoerceUnitPrice("12.5").StringFixed(2))
}

func TestCoerceDiscountPercent(t *testing.T) {
	assert.True(t, CoerceDiscountPercent("nope").IsZero())
	assert.Equal(t, "150", CoerceDiscountPercent("150").String())
	assert.Equal(t, "-5", CoerceDiscountPercent("-5").String())
}
