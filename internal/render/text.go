package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/invoice"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/report"
)

// Text writes human readable views to w. It stands in for printed
// invoices and the console display of carts and reports.
type Text struct {
	w io.Writer
}

func NewText(w io.Writer) *Text {
	return &Text{w: w}
}

func (t *Text) RenderProducts(products []catalog.Product) error {
	var b strings.Builder
	b.WriteString("=== Products ===\n")
	for _, p := range products {
		fmt.Fprintf(&b, "%d. %s - $%s (SKU %s)\n", p.ID, p.Name, p.Price.StringFixed(2), p.SKU)
	}
	return t.write(b.String())
}

// RenderCart displays a cart. A nil cart prints a notice instead.
func (t *Text) RenderCart(customerID int64, c *cart.Cart) error {
	if c == nil {
		return t.write(fmt.Sprintf("Customer %d does not have a cart!\n", customerID))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "=== Shopping Cart for Customer %d ===\n", customerID)
	for _, it := range c.Items {
		fmt.Fprintf(&b, "%s x%d - $%s each = $%s\n",
			it.ProductName, it.Quantity, it.UnitPrice.StringFixed(2), it.Total.StringFixed(2))
	}
	fmt.Fprintf(&b, "Total: $%s\n", c.Total().StringFixed(2))
	return t.write(b.String())
}

func (t *Text) RenderInvoice(inv *invoice.Invoice) error {
	var b strings.Builder
	fmt.Fprintf(&b, "=== INVOICE %s ===\n", inv.Number)
	fmt.Fprintf(&b, "Amount: $%s\n", inv.Amount.StringFixed(2))
	fmt.Fprintf(&b, "Tax: $%s\n", inv.Tax.StringFixed(2))
	fmt.Fprintf(&b, "Total: $%s\n", inv.Total.StringFixed(2))
	fmt.Fprintf(&b, "Due Date: %s\n", inv.DueDate.Format("2006-01-02"))
	b.WriteString("=== END INVOICE ===\n")
	return t.write(b.String())
}

func (t *Text) RenderSalesReport(r report.SalesReport) error {
	var b strings.Builder
	b.WriteString("=== SALES REPORT ===\n")
	fmt.Fprintf(&b, "Total Orders: %d\n", r.OrderCount)
	fmt.Fprintf(&b, "Total Sales: $%s\n", r.TotalSales.StringFixed(2))
	fmt.Fprintf(&b, "Average Order Value: $%s\n", r.AverageOrderValue.StringFixed(2))
	return t.write(b.String())
}

func (t *Text) write(s string) error {
	_, err := io.WriteString(t.w, s)
	return err
}
