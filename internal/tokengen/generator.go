// Package tokengen synthesizes the per-chain token catalogs and the fresh
// listings produced while a session runs. All randomness flows through an
// injected rand source so catalogs are reproducible under a fixed seed.
package tokengen

import (
	"fmt"
	"math/rand"
	"time"

	"pulse-board/internal/domain"
)

// Catalog partition sizes per lifecycle category.
const (
	SeedNewCount          = 20
	SeedFinalStretchCount = 18
	SeedMigratedCount     = 18
)

// insertedIDBase is where the counter for dynamically inserted tokens starts,
// leaving the seed catalog's ID range untouched.
const insertedIDBase = 100

// Options configures a Generator.
type Options struct {
	// Rand is the randomness source. Defaults to a time-seeded source.
	Rand *rand.Rand
	// Now supplies the current time. Defaults to time.Now.
	Now func() time.Time
}

// Generator produces synthetic tokens for both chains.
type Generator struct {
	rng      *rand.Rand
	now      func() time.Time
	counters map[domain.Chain]int
}

// New creates a Generator.
func New(opts Options) *Generator {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Generator{
		rng: rng,
		now: now,
		counters: map[domain.Chain]int{
			domain.ChainSOL: insertedIDBase,
			domain.ChainBNB: insertedIDBase,
		},
	}
}

// Catalog seeds the full backing collection for a chain: 20 new, 18
// final-stretch and 18 migrated tokens with category-appropriate metric
// ranges and staggered creation times.
func (g *Generator) Catalog(chain domain.Chain) []*domain.Token {
	tokens := make([]*domain.Token, 0, SeedNewCount+SeedFinalStretchCount+SeedMigratedCount)
	idx := 0
	for i := 0; i < SeedNewCount; i++ {
		age := int64(i+1)*5000 + int64(g.rng.Float64()*10000)
		tokens = append(tokens, g.seedToken(chain, idx, domain.StatusNew, age))
		idx++
	}
	for i := 0; i < SeedFinalStretchCount; i++ {
		age := int64(i+1)*3600000 + int64(g.rng.Float64()*7200000)
		tokens = append(tokens, g.seedToken(chain, idx, domain.StatusFinalStretch, age))
		idx++
	}
	for i := 0; i < SeedMigratedCount; i++ {
		age := int64(i+1)*1800000 + int64(g.rng.Float64()*3600000)
		tokens = append(tokens, g.seedToken(chain, idx, domain.StatusMigrated, age))
		idx++
	}
	return tokens
}

// NewToken synthesizes one freshly listed token: status "new", creation time
// of now, and a chain-unique identifier drawn from the inserted-ID counter.
func (g *Generator) NewToken(chain domain.Chain) *domain.Token {
	n := g.counters[chain]
	g.counters[chain] = n + 1

	id := fmt.Sprintf("new-%s-%d", chainSlug(chain), n)
	t := g.build(chain, id, n, domain.StatusNew, 0)
	return t
}

// seedToken builds one catalog entry; ageMs is how far in the past the token
// was created.
func (g *Generator) seedToken(chain domain.Chain, idx int, status domain.Status, ageMs int64) *domain.Token {
	id := fmt.Sprintf("%s-%d", chainSlug(chain), idx)
	return g.build(chain, id, idx, status, ageMs)
}

func (g *Generator) build(chain domain.Chain, id string, nameIdx int, status domain.Status, ageMs int64) *domain.Token {
	names, protocols, quotes := vocabulary(chain)
	info := names[nameIdx%len(names)]

	t := &domain.Token{
		ID:         id,
		Symbol:     info.symbol,
		Name:       info.name,
		Audit:      "passed",
		CreatedAt:  g.now().UnixMilli() - ageMs,
		Status:     status,
		LogoURL:    fmt.Sprintf("https://ui-avatars.com/api/?name=%s&background=%s", info.symbol, info.bg),
		Protocol:   protocols[g.rng.Intn(len(protocols))],
		QuoteToken: quotes[g.rng.Intn(len(quotes))],
		Chain:      chain,
	}

	if chain == domain.ChainSOL {
		t.Address = g.solAddress()
		t.ContractID = shortContractID(info.symbol) + "...pump"
		g.fillSOLMetrics(t, status)
	} else {
		t.Address = g.bnbAddress()
		t.ContractID = fmt.Sprintf("0x%08x...bsc", g.rng.Uint32())
		g.fillBNBMetrics(t, status)
	}

	for i := range t.Badges {
		t.Badges[i] = g.randomBadge()
	}
	t.Price = domain.ClampPrice(t.Price)
	return t
}

func (g *Generator) fillSOLMetrics(t *domain.Token, status domain.Status) {
	r := g.rng
	t.PriceChange24h = float64(r.Intn(80))
	switch status {
	case domain.StatusNew:
		t.Price = r.Float64() * 0.1
		t.Volume24h = float64(r.Intn(5000))
		t.MarketCap = float64(r.Intn(10000) + 2000)
		t.Liquidity = float64(r.Intn(8000) + 2000)
		t.Holders = r.Intn(20)
		t.Txns = r.Intn(50) + 1
		t.UserCount = r.Intn(15)
		t.ChartCount = r.Intn(5)
	case domain.StatusFinalStretch:
		t.Price = r.Float64()*15 + 0.5
		t.Volume24h = float64(r.Intn(500000) + 50000)
		t.MarketCap = float64(r.Intn(600000) + 30000)
		t.Liquidity = float64(r.Intn(500000) + 30000)
		t.Holders = r.Intn(600) + 100
		t.Txns = r.Intn(6000) + 500
		t.UserCount = r.Intn(100) + 10
		t.ChartCount = r.Intn(150) + 10
	default:
		t.Price = r.Float64()*50 + 1
		t.Volume24h = float64(r.Intn(800000) + 100000)
		t.MarketCap = float64(r.Intn(200000) + 30000)
		t.Liquidity = float64(r.Intn(150000) + 30000)
		t.Holders = r.Intn(1000) + 200
		t.Txns = r.Intn(10000) + 1000
		t.UserCount = r.Intn(300) + 20
		t.ChartCount = r.Intn(1000) + 50
	}
}

func (g *Generator) fillBNBMetrics(t *domain.Token, status domain.Status) {
	r := g.rng
	t.PriceChange24h = float64(r.Intn(60))
	switch status {
	case domain.StatusNew:
		t.Price = r.Float64() * 0.01
		t.Volume24h = float64(r.Intn(3000))
		t.MarketCap = float64(r.Intn(8000) + 1000)
		t.Liquidity = float64(r.Intn(5000) + 1000)
		t.Holders = r.Intn(15)
		t.Txns = r.Intn(40) + 1
		t.UserCount = r.Intn(10)
		t.ChartCount = r.Intn(3)
	case domain.StatusFinalStretch:
		t.Price = r.Float64()*5 + 0.1
		t.Volume24h = float64(r.Intn(300000) + 30000)
		t.MarketCap = float64(r.Intn(400000) + 20000)
		t.Liquidity = float64(r.Intn(300000) + 20000)
		t.Holders = r.Intn(400) + 50
		t.Txns = r.Intn(4000) + 300
		t.UserCount = r.Intn(80) + 5
		t.ChartCount = r.Intn(100) + 5
	default:
		t.Price = r.Float64()*20 + 0.5
		t.Volume24h = float64(r.Intn(500000) + 80000)
		t.MarketCap = float64(r.Intn(150000) + 20000)
		t.Liquidity = float64(r.Intn(100000) + 20000)
		t.Holders = r.Intn(800) + 100
		t.Txns = r.Intn(8000) + 800
		t.UserCount = r.Intn(200) + 15
		t.ChartCount = r.Intn(800) + 30
	}
}

func (g *Generator) randomBadge() domain.Badge {
	color := domain.BadgeRed
	if g.rng.Float64() > 0.6 {
		color = domain.BadgeGreen
	}
	return domain.Badge{
		Value: g.rng.Intn(domain.BadgeValueMax),
		Color: color,
	}
}

func vocabulary(chain domain.Chain) ([]nameEntry, []string, []string) {
	if chain == domain.ChainBNB {
		return bnbNames, bnbProtocols, bnbQuoteTokens
	}
	return solNames, solProtocols, solQuoteTokens
}

func chainSlug(chain domain.Chain) string {
	if chain == domain.ChainBNB {
		return "bnb"
	}
	return "sol"
}

func shortContractID(symbol string) string {
	if len(symbol) > 4 {
		return symbol[:4]
	}
	return symbol
}
