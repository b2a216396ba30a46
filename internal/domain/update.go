package domain

// MarketUpdate is a delta produced by the feed simulator: a new price and
// cumulative 24h change for one token. Updates are ephemeral; they live only
// between emission and the coalescing flush that applies them.
type MarketUpdate struct {
	TokenID        string  `json:"tokenId"`
	Price          float64 `json:"price"`
	PriceChange24h float64 `json:"priceChange24h"`
}
