// Package memory provides in-memory implementations of store interfaces.
package memory

import (
	"context"
	"sync"

	"pulse-board/internal/domain"
	"pulse-board/internal/store"
)

// TokenStore is an in-memory implementation of store.TokenStore.
//
// The collection slice is copy-on-write: readers receive the current
// slice as-is and writers always install a fresh one, so a snapshot
// stays valid for as long as the caller holds it.
type TokenStore struct {
	mu         sync.RWMutex
	tokens     []*domain.Token
	generation uint64
	maxBacklog int
}

var _ store.TokenStore = (*TokenStore)(nil)

// NewTokenStore creates an empty in-memory token store. maxBacklog caps
// the collection size on Prepend, evicting the oldest entries; zero
// means unbounded.
func NewTokenStore(maxBacklog int) *TokenStore {
	return &TokenStore{maxBacklog: maxBacklog}
}

// Replace swaps the whole collection and bumps the generation.
func (s *TokenStore) Replace(_ context.Context, tokens []*domain.Token) error {
	for _, t := range tokens {
		if t == nil || t.ID == "" {
			return store.ErrInvalidInput
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens = tokens
	s.generation++
	return nil
}

// Prepend inserts a token at the head. When the backlog cap is
// exceeded, the oldest token of the inserted token's category is
// evicted, so insertions never erode the other categories.
func (s *TokenStore) Prepend(_ context.Context, t *domain.Token) error {
	if t == nil || t.ID == "" {
		return store.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]*domain.Token, 0, len(s.tokens)+1)
	next = append(next, t)
	next = append(next, s.tokens...)
	if s.maxBacklog > 0 && len(next) > s.maxBacklog {
		next = evictOldest(next, t.Status)
	}
	s.tokens = next
	s.generation++
	return nil
}

// evictOldest removes the last token of the given category, sparing the
// freshly inserted head. Falls back to the overall tail when the
// category has no other entries.
func evictOldest(tokens []*domain.Token, status domain.Status) []*domain.Token {
	for i := len(tokens) - 1; i >= 1; i-- {
		if tokens[i].Status == status {
			return append(tokens[:i], tokens[i+1:]...)
		}
	}
	return tokens[:len(tokens)-1]
}

// Apply runs fn under the write lock and installs its result when changed.
func (s *TokenStore) Apply(_ context.Context, fn store.ApplyFunc) (bool, error) {
	if fn == nil {
		return false, store.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed := fn(s.tokens)
	if !changed {
		return false, nil
	}
	s.tokens = next
	s.generation++
	return true, nil
}

// Snapshot returns the current collection and its generation.
func (s *TokenStore) Snapshot(_ context.Context) ([]*domain.Token, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens, s.generation
}

// GetByID retrieves a token by ID. Returns ErrNotFound if absent.
func (s *TokenStore) GetByID(_ context.Context, id string) (*domain.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.tokens {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, store.ErrNotFound
}

// Len reports the current collection size.
func (s *TokenStore) Len(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tokens)
}
