// Package view derives the bounded, ordered per-category lists shown on
// the dashboard from the full backing collection.
package view

import (
	"sort"
	"sync"
	"time"

	"pulse-board/internal/domain"
	"pulse-board/internal/observability"
)

// DefaultMaxRows caps each derived visible list.
const DefaultMaxRows = 12

// DeriveVisible filters the collection, keeps only tokens with the given
// status, sorts by col, and truncates to maxRows. It is pure: the input
// slice is never modified and the same inputs always yield the same
// output.
//
// Sorting is stable for both directions. Ascending order is a true
// stable ascending sort, not a reversal of the descending order, so
// ties keep their relative collection order in either direction.
func DeriveVisible(tokens []*domain.Token, filter domain.FilterConfig, col domain.ColumnSort, status domain.Status, maxRows int) []*domain.Token {
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}

	out := make([]*domain.Token, 0, maxRows)
	for _, t := range tokens {
		if t.Status != status {
			continue
		}
		if !filter.Matches(t) {
			continue
		}
		out = append(out, t)
	}

	if col.Field.IsValid() {
		key := sortKey(col.Field)
		asc := col.Direction == domain.SortAsc
		sort.SliceStable(out, func(i, j int) bool {
			if asc {
				return key(out[i]) < key(out[j])
			}
			return key(out[i]) > key(out[j])
		})
	}

	if len(out) > maxRows {
		out = out[:maxRows]
	}
	return out
}

// sortKey maps a sort field to its numeric extractor.
func sortKey(f domain.SortField) func(*domain.Token) float64 {
	switch f {
	case domain.SortMarketCap:
		return func(t *domain.Token) float64 { return t.MarketCap }
	case domain.SortVolume:
		return func(t *domain.Token) float64 { return t.Volume24h }
	case domain.SortLiquidity:
		return func(t *domain.Token) float64 { return t.Liquidity }
	case domain.SortTime:
		return func(t *domain.Token) float64 { return float64(t.CreatedAt) }
	case domain.SortPrice:
		return func(t *domain.Token) float64 { return t.Price }
	case domain.SortHolders:
		return func(t *domain.Token) float64 { return float64(t.Holders) }
	default:
		return func(*domain.Token) float64 { return 0 }
	}
}

// Engine memoizes DeriveVisible per category against the collection
// generation and the filter/sort configuration, so repeated renders with
// unchanged inputs reuse the previous derivation.
type Engine struct {
	mu      sync.Mutex
	maxRows int
	cache   map[domain.Status]derivation
}

type derivation struct {
	generation uint64
	filterKey  string
	col        domain.ColumnSort
	result     []*domain.Token
}

// NewEngine creates an Engine. maxRows <= 0 uses DefaultMaxRows.
func NewEngine(maxRows int) *Engine {
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}
	return &Engine{
		maxRows: maxRows,
		cache:   make(map[domain.Status]derivation),
	}
}

// Visible returns the derived list for one category, recomputing only
// when the generation, filter, or column sort changed since the last
// call.
func (e *Engine) Visible(tokens []*domain.Token, generation uint64, filter domain.FilterConfig, col domain.ColumnSort, status domain.Status) []*domain.Token {
	filterKey := filter.Key()

	e.mu.Lock()
	defer e.mu.Unlock()

	if d, ok := e.cache[status]; ok &&
		d.generation == generation && d.filterKey == filterKey && d.col == col {
		return d.result
	}

	start := time.Now()
	result := DeriveVisible(tokens, filter, col, status, e.maxRows)
	observability.RecordDeriveDuration(time.Since(start).Seconds())

	e.cache[status] = derivation{
		generation: generation,
		filterKey:  filterKey,
		col:        col,
		result:     result,
	}
	return result
}

// Invalidate drops all memoized derivations, e.g. on chain switch.
func (e *Engine) Invalidate() {
	e.mu.Lock()
	e.cache = make(map[domain.Status]derivation)
	e.mu.Unlock()
}
