// Package coalesce buffers high-frequency market updates and collapses
// them into at most one write per token per flush.
package coalesce

import (
	"sync"

	"pulse-board/internal/domain"
	"pulse-board/internal/observability"
)

// Buffer accumulates market updates between flushes. Multiple updates for
// the same token collapse to the most recent one. The zero value is ready
// to use.
type Buffer struct {
	mu      sync.Mutex
	pending map[string]domain.MarketUpdate
}

// NewBuffer creates an empty Buffer.
func NewBuffer() *Buffer {
	return &Buffer{pending: make(map[string]domain.MarketUpdate)}
}

// Add buffers a batch of updates, keeping only the latest per token.
func (b *Buffer) Add(updates []domain.MarketUpdate) {
	if len(updates) == 0 {
		return
	}

	b.mu.Lock()
	if b.pending == nil {
		b.pending = make(map[string]domain.MarketUpdate)
	}
	for _, u := range updates {
		b.pending[u.TokenID] = u
	}
	b.mu.Unlock()

	observability.RecordBuffered(len(updates))
}

// Len reports the number of distinct tokens with a pending update.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}

// Drop discards all pending updates without applying them.
func (b *Buffer) Drop() {
	b.mu.Lock()
	b.pending = make(map[string]domain.MarketUpdate)
	b.mu.Unlock()
}

// Flush applies all pending updates to tokens and clears the buffer.
// It returns a new slice when at least one token changed, together with
// true. Unaffected tokens keep their original pointers; affected tokens
// are replaced with updated copies. When no pending update matches a
// token in the slice, Flush returns the input slice unchanged and false.
// Updates for tokens absent from the slice are silently discarded.
func (b *Buffer) Flush(tokens []*domain.Token) ([]*domain.Token, bool) {
	b.mu.Lock()
	pending := b.pending
	b.pending = make(map[string]domain.MarketUpdate)
	b.mu.Unlock()

	if len(pending) == 0 {
		return tokens, false
	}

	applied := 0
	out := make([]*domain.Token, len(tokens))
	for i, t := range tokens {
		u, ok := pending[t.ID]
		if !ok {
			out[i] = t
			continue
		}
		next := t.Clone()
		next.Price = u.Price
		next.PriceChange24h = u.PriceChange24h
		out[i] = next
		applied++
	}

	if applied == 0 {
		return tokens, false
	}

	observability.RecordFlush(len(pending) - applied)
	return out, true
}
