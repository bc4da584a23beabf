package catalog

// Product is one row of the wine catalog. The ID is the LCBO product
// URI, unique within a catalog. Products are immutable after load.
type Product struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Country         string  `json:"country"`
	Region          string  `json:"region"`
	Varietal        string  `json:"varietal"`
	Program         string  `json:"program,omitempty"`
	Volume          string  `json:"volume,omitempty"`
	Description     string  `json:"description,omitempty"`
	Thumbnail       string  `json:"thumbnail,omitempty"`
	PriceCents      int64   `json:"price_cents"`
	PromoPriceCents int64   `json:"promo_price_cents,omitempty"`
	Rating          float64 `json:"rating"`
	WeightedRating  float64 `json:"weighted_rating"`
	Reviews         int     `json:"reviews"`
	Inventory       int     `json:"inventory"`
	ViewRankYearly  int     `json:"view_rank_yearly,omitempty"`
	ViewRankMonthly int     `json:"view_rank_monthly,omitempty"`
	SellRankYearly  int     `json:"sell_rank_yearly,omitempty"`
	SellRankMonthly int     `json:"sell_rank_monthly,omitempty"`
}

// OnSale reports whether the product has an active promo price.
func (p Product) OnSale() bool {
	return p.PromoPriceCents > 0
}
