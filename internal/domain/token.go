package domain

// Status classifies a token into one of the three lifecycle columns.
// It is assigned at creation and never transitions afterwards.
type Status string

const (
	StatusNew          Status = "new"
	StatusFinalStretch Status = "final_stretch"
	StatusMigrated     Status = "migrated"
)

// Statuses lists all lifecycle categories in display order.
var Statuses = []Status{StatusNew, StatusFinalStretch, StatusMigrated}

// String returns the string representation of Status.
func (s Status) String() string {
	return string(s)
}

// IsValid checks if the status is a valid value.
func (s Status) IsValid() bool {
	return s == StatusNew || s == StatusFinalStretch || s == StatusMigrated
}

// Chain identifies which per-chain catalog a token belongs to.
type Chain string

const (
	ChainSOL Chain = "SOL"
	ChainBNB Chain = "BNB"
)

// String returns the string representation of Chain.
func (c Chain) String() string {
	return string(c)
}

// IsValid checks if the chain is a supported value.
func (c Chain) IsValid() bool {
	return c == ChainSOL || c == ChainBNB
}

// MinPrice is the floor below which a token price is never allowed to fall.
const MinPrice = 0.001

// BadgeCount is the fixed number of badges carried by every token.
const BadgeCount = 5

// Badge value bounds.
const (
	BadgeValueMin = 0
	BadgeValueMax = 90
)

// BadgeColor is the polarity of a badge.
type BadgeColor string

const (
	BadgeRed   BadgeColor = "red"
	BadgeGreen BadgeColor = "green"
)

// Flip returns the opposite polarity.
func (c BadgeColor) Flip() BadgeColor {
	if c == BadgeRed {
		return BadgeGreen
	}
	return BadgeRed
}

// Badge is a small percentage indicator displayed on a token row.
type Badge struct {
	Value int        `json:"value"` // clamped to [BadgeValueMin, BadgeValueMax]
	Color BadgeColor `json:"color"`
}

// Token represents one tradable asset row. Instances are treated as
// immutable once published to a store; updates replace the token with a
// mutated copy rather than writing through the pointer.
type Token struct {
	ID             string            `json:"id"` // unique within a chain's collection
	Symbol         string            `json:"symbol"`
	Name           string            `json:"name"`
	Address        string            `json:"address"`
	LogoURL        string            `json:"logoUrl"`
	Price          float64           `json:"price"` // always >= MinPrice
	PriceChange24h float64           `json:"priceChange24h"`
	Volume24h      float64           `json:"volume24h"`
	MarketCap      float64           `json:"marketCap"`
	Liquidity      float64           `json:"liquidity"`
	Holders        int               `json:"holders"`
	Txns           int               `json:"txns"`
	Audit          string            `json:"audit"`
	CreatedAt      int64             `json:"createdAt"` // Unix timestamp in milliseconds
	Status         Status            `json:"status"`
	ContractID     string            `json:"contractId"` // shortened display form, e.g. "3zqm...pump"
	UserCount      int               `json:"userCount"`
	ChartCount     int               `json:"chartCount"`
	Badges         [BadgeCount]Badge `json:"badges"`
	Protocol       string            `json:"protocol"`
	QuoteToken     string            `json:"quoteToken"`
	Chain          Chain             `json:"chain"`
}

// Clone returns a copy of the token.
func (t *Token) Clone() *Token {
	c := *t
	return &c
}

// ClampPrice enforces the price floor.
func ClampPrice(p float64) float64 {
	if p < MinPrice {
		return MinPrice
	}
	return p
}

// ClampNonNegative floors a metric at zero.
func ClampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// ClampCount floors an integer counter at zero.
func ClampCount(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

// ClampBadgeValue bounds a badge value to [BadgeValueMin, BadgeValueMax].
func ClampBadgeValue(v int) int {
	if v < BadgeValueMin {
		return BadgeValueMin
	}
	if v > BadgeValueMax {
		return BadgeValueMax
	}
	return v
}
