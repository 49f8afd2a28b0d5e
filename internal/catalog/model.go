package catalog

import "github.com/shopspring/decimal"

type Product struct {
	ID            int64           `json:"productId"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	SKU           string          `json:"sku"`
	StockQuantity int             `json:"stockQuantity"`
}
