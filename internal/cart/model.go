package cart

import "github.com/shopspring/decimal"

type Item struct {
	ID          int64           `json:"itemId"`
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Total       decimal.Decimal `json:"total"`
}

type Cart struct {
	ID         int64  `json:"cartId"`
	CustomerID int64  `json:"customerId"`
	Items      []Item `json:"items"`
}

// Total is the sum of the stored line totals.
func (c *Cart) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range c.Items {
		sum = sum.Add(it.Total)
	}
	return sum
}

// Find returns the line for productID, or nil.
func (c *Cart) Find(productID int64) *Item {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

func (c *Cart) Empty() bool {
	return len(c.Items) == 0
}
