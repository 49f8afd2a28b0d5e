package pricing

import "github.com/shopspring/decimal"

// Breakdown is the priced form of a subtotal. Total = Subtotal + Tax + Shipping.
type Breakdown struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

type Quote struct {
	Breakdown
	Code     string          `json:"code,omitempty"`
	Discount decimal.Decimal `json:"discount"`
}

type Calculator struct {
	tax       TaxPolicy
	shipping  ShippingCalculator
	discounts DiscountTable
}

func NewCalculator(tax TaxPolicy, shipping ShippingCalculator, discounts DiscountTable) *Calculator {
	return &Calculator{tax: tax, shipping: shipping, discounts: discounts}
}

// Default is 8% tax and a flat 9.99 shipping fee.
func Default() *Calculator {
	return NewCalculator(
		FlatRateTax{Rate: decimal.RequireFromString("0.08")},
		FlatShipping{Fee: decimal.RequireFromString("9.99")},
		DefaultDiscounts(),
	)
}

func (c *Calculator) Price(subtotal decimal.Decimal) Breakdown {
	subtotal = subtotal.Round(2)
	tax := c.tax.Tax(subtotal)
	shipping := c.shipping.Shipping(subtotal)
	return Breakdown{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Total:    subtotal.Add(tax).Add(shipping),
	}
}

// Quote prices subtotal and applies a discount code on top. The total never
// goes below zero.
func (c *Calculator) Quote(subtotal decimal.Decimal, code string) Quote {
	b := c.Price(subtotal)
	off := c.discounts.Apply(code, b.Subtotal, b.Shipping)

	q := Quote{Breakdown: b, Code: code, Discount: off}
	q.Total = decimal.Max(b.Total.Sub(off), decimal.Zero)
	return q
}
