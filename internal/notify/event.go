package notify

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// OrderPlaced describes a finalized order for downstream notification.
type OrderPlaced struct {
	OrderID       int64           `json:"orderId"`
	OrderNumber   string          `json:"orderNumber"`
	CustomerID    int64           `json:"customerId"`
	Email         string          `json:"email"`
	InvoiceNumber string          `json:"invoiceNumber,omitempty"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"taxAmount"`
	Shipping      decimal.Decimal `json:"shippingAmount"`
	Total         decimal.Decimal `json:"totalAmount"`
	PlacedAt      time.Time       `json:"placedAt"`
}

// Sink receives order-placed notifications.
type Sink interface {
	Name() string
	OrderPlaced(ctx context.Context, ev OrderPlaced) error
}
