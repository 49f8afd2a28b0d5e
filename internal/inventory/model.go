package inventory

type StockItem struct {
	ProductID int64 `json:"productId"`
	Available int   `json:"available"`
}
