package domain

import "time"

// Shop sells items of a single category. Stock is regenerated wholesale when
// read more than RefreshWindow after the last refresh.
type Shop struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	LastRefresh time.Time `json:"last_refresh"`
}

// ShopRefreshWindow is how long a shop's stock stays fresh.
const ShopRefreshWindow = time.Hour

// Stock regeneration bounds: quantity uniform in [10,60), price a uniform
// factor of [0.8,1.2] applied to the item's base price.
const (
	ShopStockMinQuantity  = 10
	ShopStockMaxQuantity  = 60
	ShopPriceFactorMin    = 0.8
	ShopPriceFactorSpread = 0.4
)

// StockEntry is one shop's holding of one item, joined with catalog data.
type StockEntry struct {
	ShopID   int64  `json:"shop_id"`
	ItemID   int64  `json:"item_id"`
	ItemName string `json:"item_name"`
	Category string `json:"category"`
	Kind     string `json:"kind"`
	Quantity int    `json:"quantity"`
	Price    int    `json:"price"`
}
