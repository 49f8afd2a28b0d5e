package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TaxPolicy computes the tax owed on a subtotal.
type TaxPolicy interface {
	Tax(subtotal decimal.Decimal) decimal.Decimal
}

// ShippingCalculator computes the shipping fee for a subtotal.
type ShippingCalculator interface {
	Shipping(subtotal decimal.Decimal) decimal.Decimal
}

type FlatRateTax struct {
	Rate decimal.Decimal
}

func (t FlatRateTax) Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(t.Rate).Round(2)
}

type FlatShipping struct {
	Fee decimal.Decimal
}

func (s FlatShipping) Shipping(decimal.Decimal) decimal.Decimal {
	return s.Fee
}

// TieredShipping is free over 100, 5.99 over 50 and 9.99 otherwise.
type TieredShipping struct{}

var (
	tierFreeAbove    = decimal.NewFromInt(100)
	tierReducedAbove = decimal.NewFromInt(50)
	tierReducedFee   = decimal.RequireFromString("5.99")
	tierStandardFee  = decimal.RequireFromString("9.99")
)

func (TieredShipping) Shipping(subtotal decimal.Decimal) decimal.Decimal {
	switch {
	case subtotal.GreaterThan(tierFreeAbove):
		return decimal.Zero
	case subtotal.GreaterThan(tierReducedAbove):
		return tierReducedFee
	default:
		return tierStandardFee
	}
}

// Discount is the amount taken off an order, given its subtotal and
// shipping.
type Discount func(subtotal, shipping decimal.Decimal) decimal.Decimal

func PercentOff(pct int64) Discount {
	rate := decimal.NewFromInt(pct).Div(decimal.NewFromInt(100))
	return func(subtotal, _ decimal.Decimal) decimal.Decimal {
		return subtotal.Mul(rate).Round(2)
	}
}

func FreeShipping(_, shipping decimal.Decimal) decimal.Decimal {
	return shipping
}

// DiscountTable maps upper-case codes to discounts.
type DiscountTable map[string]Discount

func DefaultDiscounts() DiscountTable {
	return DiscountTable{
		"SAVE10":   PercentOff(10),
		"SAVE20":   PercentOff(20),
		"FREESHIP": FreeShipping,
	}
}

// Apply returns the discount for code. Unknown or empty codes give zero.
func (t DiscountTable) Apply(code string, subtotal, shipping decimal.Decimal) decimal.Decimal {
	d, ok := t[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return decimal.Zero
	}
	return d(subtotal, shipping)
}
