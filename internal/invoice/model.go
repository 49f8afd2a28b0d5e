package invoice

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending Status = "Pending"
	StatusPaid    Status = "Paid"
)

type Invoice struct {
	ID        int64           `json:"invoiceId"`
	OrderID   int64           `json:"orderId"`
	Number    string          `json:"invoiceNumber"`
	Status    Status          `json:"status"`
	Amount    decimal.Decimal `json:"amount"`
	Tax       decimal.Decimal `json:"taxAmount"`
	Total     decimal.Decimal `json:"totalAmount"`
	DueDate   time.Time       `json:"dueDate"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Source is the part of an order an invoice is derived from.
type Source struct {
	OrderID     int64
	OrderNumber string
	Tax         decimal.Decimal
	Total       decimal.Decimal
	CreatedAt   time.Time
}
