// Package mutate keeps the token collection visually alive with periodic
// random jitter, independent of the market feed.
package mutate

import (
	"context"
	"log"
	"math/rand"
	"time"

	"pulse-board/internal/domain"
	"pulse-board/internal/observability"
	"pulse-board/internal/store"
)

// DefaultMutateInterval is the period between whole-collection passes.
const DefaultMutateInterval = 2 * time.Second

// MutatorOptions configures a Mutator.
type MutatorOptions struct {
	Interval time.Duration // defaults to DefaultMutateInterval
	Rand     *rand.Rand    // defaults to a time-seeded source
	Logger   *log.Logger   // defaults to log.Default()
}

// Mutator jitters every token's secondary metrics on a fixed period,
// replacing the collection with mutated copies.
type Mutator struct {
	store    store.TokenStore
	interval time.Duration
	rng      *rand.Rand
	logger   *log.Logger
}

// NewMutator creates a Mutator writing to the given store.
func NewMutator(st store.TokenStore, opts MutatorOptions) *Mutator {
	if opts.Interval <= 0 {
		opts.Interval = DefaultMutateInterval
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Mutator{
		store:    st,
		interval: opts.Interval,
		rng:      opts.Rand,
		logger:   opts.Logger,
	}
}

// Run executes mutation passes until ctx is cancelled.
func (m *Mutator) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := m.store.Apply(ctx, m.Pass); err != nil {
				m.logger.Printf("mutator: apply failed: %v", err)
			}
		}
	}
}

// Pass mutates a whole collection, returning a new slice of mutated
// copies. It is an ApplyFunc and never reports changed == false for a
// non-empty collection.
func (m *Mutator) Pass(tokens []*domain.Token) ([]*domain.Token, bool) {
	if len(tokens) == 0 {
		return tokens, false
	}

	next := make([]*domain.Token, len(tokens))
	for i, t := range tokens {
		next[i] = m.Apply(t)
	}
	observability.RecordMutationRun()
	return next, true
}

// Apply returns a mutated copy of a single token. The input is not
// modified.
func (m *Mutator) Apply(t *domain.Token) *domain.Token {
	next := t.Clone()

	next.Price = domain.ClampPrice(next.Price * (1 + m.uniform(-0.05, 0.05)))
	next.Volume24h = domain.ClampNonNegative(next.Volume24h * (1 + m.uniform(-0.10, 0.10)))
	next.Txns += m.rng.Intn(5)
	next.UserCount = domain.ClampCount(next.UserCount + m.intRange(-3, 3))
	next.ChartCount = domain.ClampCount(next.ChartCount + m.intRange(-2, 2))

	for i := range next.Badges {
		next.Badges[i].Value = domain.ClampBadgeValue(next.Badges[i].Value + m.intRange(-10, 9))
		if m.rng.Float64() < 0.2 {
			next.Badges[i].Color = next.Badges[i].Color.Flip()
		}
	}

	return next
}

// uniform samples U(lo, hi).
func (m *Mutator) uniform(lo, hi float64) float64 {
	return lo + m.rng.Float64()*(hi-lo)
}

// intRange samples a uniform integer in [lo, hi].
func (m *Mutator) intRange(lo, hi int) int {
	return lo + m.rng.Intn(hi-lo+1)
}
