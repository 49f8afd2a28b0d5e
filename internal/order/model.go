package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a copy of a cart line taken at finalization.
type Item struct {
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Total       decimal.Decimal `json:"total"`
}

type Order struct {
	ID         int64           `json:"orderId"`
	CustomerID int64           `json:"customerId,omitempty"`
	CartID     int64           `json:"cartId,omitempty"`
	Number     string          `json:"orderNumber"`
	Status     Status          `json:"status"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"taxAmount"`
	Shipping   decimal.Decimal `json:"shippingAmount"`
	Total      decimal.Decimal `json:"totalAmount"`
	CreatedAt  time.Time       `json:"createdAt"`
	Items      []Item          `json:"items,omitempty"`
}
