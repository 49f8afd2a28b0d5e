package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestTieredShipping(t *testing.T) {
	tests := []struct {
		subtotal string
		want     string
	}{
		{"0", "9.99"},
		{"50", "9.99"},
		{"50.01", "5.99"},
		{"100", "5.99"},
		{"100.01", "0"},
		{"2029.97", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.subtotal, func(t *testing.T) {
			got := TieredShipping{}.Shipping(d(tt.subtotal))
			assert.True(t, d(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestDefaultPrice(t *testing.T) {
	b := Default().Price(d("2029.97"))

	assert.Equal(t, "2029.97", b.Subtotal.StringFixed(2))
	assert.Equal(t, "162.40", b.Tax.StringFixed(2))
	assert.Equal(t, "9.99", b.Shipping.StringFixed(2))
	assert.Equal(t, "2202.36", b.Total.StringFixed(2))
	assert.True(t, b.Total.Equal(b.Subtotal.Add(b.Tax).Add(b.Shipping)))
}

func TestDiscountTable(t *testing.T) {
	table := DefaultDiscounts()
	subtotal, shipping := d("200.00"), d("9.99")

	tests := map[string]string{
		"SAVE10":   "20",
		"save20":   "40",
		"FREESHIP": "9.99",
		"BOGUS":    "0",
		"":         "0",
	}
	for code, want := range tests {
		got := table.Apply(code, subtotal, shipping)
		assert.True(t, d(want).Equal(got), "%q: got %s", code, got)
	}
}

func TestQuote(t *testing.T) {
	q := Default().Quote(d("100.00"), "SAVE10")

	assert.Equal(t, "8.00", q.Tax.StringFixed(2))
	assert.Equal(t, "10.00", q.Discount.StringFixed(2))
	assert.Equal(t, "107.99", q.Total.StringFixed(2))

	free := Default().Quote(d("0"), "FREESHIP")
	assert.True(t, free.Total.IsZero())
}
