// Package store defines access to the backing token collection.
package store

import (
	"context"
	"errors"

	"pulse-board/internal/domain"
)

// Collection errors.
var (
	// ErrNotFound is returned when a requested token does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
)

// ApplyFunc receives the current ordered collection and returns its
// replacement. Implementations must treat the input as read-only and
// return changed == false to leave the collection untouched. Tokens are
// immutable once stored: a change to a token is expressed by returning
// a new *domain.Token in its slot.
type ApplyFunc func(tokens []*domain.Token) (next []*domain.Token, changed bool)

// TokenStore holds the ordered backing collection for one dashboard
// category. Order is significant: index 0 is the newest listing.
type TokenStore interface {
	// Replace swaps the whole collection, e.g. on reseed after a chain
	// switch. The store takes ownership of the slice.
	Replace(ctx context.Context, tokens []*domain.Token) error

	// Prepend inserts a token at the head of the collection. Returns
	// ErrInvalidInput on nil tokens or empty IDs.
	Prepend(ctx context.Context, t *domain.Token) error

	// Apply runs fn against the current collection under the write lock
	// and installs its result when changed. Returns whether a change was
	// installed.
	Apply(ctx context.Context, fn ApplyFunc) (bool, error)

	// Snapshot returns the current collection and its generation. The
	// returned slice must not be mutated; the generation increases on
	// every installed change and never repeats.
	Snapshot(ctx context.Context) ([]*domain.Token, uint64)

	// GetByID retrieves a token by ID. Returns ErrNotFound if absent.
	GetByID(ctx context.Context, id string) (*domain.Token, error)

	// Len reports the current collection size.
	Len(ctx context.Context) int
}
