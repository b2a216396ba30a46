package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"pulse-board/internal/domain"
	"pulse-board/internal/store"
)

func seedTokens(n int) []*domain.Token {
	tokens := make([]*domain.Token, n)
	for i := range tokens {
		tokens[i] = &domain.Token{ID: fmt.Sprintf("t%d", i), Price: 1}
	}
	return tokens
}

func TestTokenStore_ReplaceAndSnapshot(t *testing.T) {
	s := NewTokenStore(0)
	ctx := context.Background()

	_, gen0 := s.Snapshot(ctx)

	tokens := seedTokens(3)
	if err := s.Replace(ctx, tokens); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	got, gen1 := s.Snapshot(ctx)
	if len(got) != 3 {
		t.Fatalf("snapshot size: got %d, want 3", len(got))
	}
	if gen1 <= gen0 {
		t.Errorf("generation should increase: %d -> %d", gen0, gen1)
	}
	if got[0] != tokens[0] {
		t.Error("snapshot should share the stored pointers")
	}
}

func TestTokenStore_ReplaceRejectsInvalid(t *testing.T) {
	s := NewTokenStore(0)
	ctx := context.Background()

	err := s.Replace(ctx, []*domain.Token{{ID: ""}})
	if !errors.Is(err, store.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTokenStore_PrependOrder(t *testing.T) {
	s := NewTokenStore(0)
	ctx := context.Background()

	if err := s.Replace(ctx, seedTokens(2)); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	fresh := &domain.Token{ID: "fresh", Price: 1}
	if err := s.Prepend(ctx, fresh); err != nil {
		t.Fatalf("Prepend failed: %v", err)
	}

	got, _ := s.Snapshot(ctx)
	if got[0].ID != "fresh" {
		t.Errorf("prepended token should be first, got %s", got[0].ID)
	}
	if len(got) != 3 {
		t.Errorf("size: got %d, want 3", len(got))
	}
}

func TestTokenStore_PrependEvictsAtCap(t *testing.T) {
	s := NewTokenStore(3)
	ctx := context.Background()

	if err := s.Replace(ctx, seedTokens(3)); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if err := s.Prepend(ctx, &domain.Token{ID: "fresh"}); err != nil {
		t.Fatalf("Prepend failed: %v", err)
	}

	got, _ := s.Snapshot(ctx)
	if len(got) != 3 {
		t.Fatalf("capped size: got %d, want 3", len(got))
	}
	if got[0].ID != "fresh" {
		t.Errorf("head: got %s, want fresh", got[0].ID)
	}
	if got[len(got)-1].ID != "t1" {
		t.Errorf("oldest entry should be evicted, tail is %s", got[len(got)-1].ID)
	}
}

func TestTokenStore_PrependEvictsWithinCategory(t *testing.T) {
	s := NewTokenStore(4)
	ctx := context.Background()

	seed := []*domain.Token{
		{ID: "n0", Status: domain.StatusNew},
		{ID: "f0", Status: domain.StatusFinalStretch},
		{ID: "n1", Status: domain.StatusNew},
		{ID: "m0", Status: domain.StatusMigrated},
	}
	if err := s.Replace(ctx, seed); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if err := s.Prepend(ctx, &domain.Token{ID: "fresh", Status: domain.StatusNew}); err != nil {
		t.Fatalf("Prepend failed: %v", err)
	}

	got, _ := s.Snapshot(ctx)
	want := []string{"fresh", "n0", "f0", "m0"}
	if len(got) != len(want) {
		t.Fatalf("capped size: got %d, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d: got %s, want %s (oldest new listing makes room)", i, got[i].ID, id)
		}
	}
}

func TestTokenStore_PrependEvictsTailWhenCategoryEmpty(t *testing.T) {
	s := NewTokenStore(2)
	ctx := context.Background()

	seed := []*domain.Token{
		{ID: "n0", Status: domain.StatusNew},
		{ID: "n1", Status: domain.StatusNew},
	}
	if err := s.Replace(ctx, seed); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if err := s.Prepend(ctx, &domain.Token{ID: "m0", Status: domain.StatusMigrated}); err != nil {
		t.Fatalf("Prepend failed: %v", err)
	}

	got, _ := s.Snapshot(ctx)
	if len(got) != 2 {
		t.Fatalf("capped size: got %d, want 2", len(got))
	}
	if got[0].ID != "m0" || got[1].ID != "n0" {
		t.Errorf("expected [m0 n0], got [%s %s]", got[0].ID, got[1].ID)
	}
}

func TestTokenStore_SnapshotSurvivesLaterWrites(t *testing.T) {
	s := NewTokenStore(0)
	ctx := context.Background()

	if err := s.Replace(ctx, seedTokens(2)); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	before, _ := s.Snapshot(ctx)

	if err := s.Prepend(ctx, &domain.Token{ID: "fresh"}); err != nil {
		t.Fatalf("Prepend failed: %v", err)
	}

	if len(before) != 2 || before[0].ID != "t0" {
		t.Error("earlier snapshot should be unaffected by later writes")
	}
}

func TestTokenStore_Apply(t *testing.T) {
	s := NewTokenStore(0)
	ctx := context.Background()

	if err := s.Replace(ctx, seedTokens(2)); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	_, gen0 := s.Snapshot(ctx)

	changed, err := s.Apply(ctx, func(tokens []*domain.Token) ([]*domain.Token, bool) {
		next := make([]*domain.Token, len(tokens))
		for i, tok := range tokens {
			c := tok.Clone()
			c.Price = 9
			next[i] = c
		}
		return next, true
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if !changed {
		t.Fatal("Apply should report the change")
	}

	got, gen1 := s.Snapshot(ctx)
	if got[0].Price != 9 {
		t.Errorf("applied price: got %f, want 9", got[0].Price)
	}
	if gen1 != gen0+1 {
		t.Errorf("generation: got %d, want %d", gen1, gen0+1)
	}
}

func TestTokenStore_ApplyNoChangeKeepsGeneration(t *testing.T) {
	s := NewTokenStore(0)
	ctx := context.Background()

	if err := s.Replace(ctx, seedTokens(1)); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	_, gen0 := s.Snapshot(ctx)

	changed, err := s.Apply(ctx, func(tokens []*domain.Token) ([]*domain.Token, bool) {
		return tokens, false
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if changed {
		t.Error("unchanged Apply should report false")
	}

	_, gen1 := s.Snapshot(ctx)
	if gen1 != gen0 {
		t.Errorf("generation should not move on no-op: %d -> %d", gen0, gen1)
	}
}

func TestTokenStore_GetByID(t *testing.T) {
	s := NewTokenStore(0)
	ctx := context.Background()

	if err := s.Replace(ctx, seedTokens(2)); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	got, err := s.GetByID(ctx, "t1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.ID != "t1" {
		t.Errorf("GetByID: got %s", got.ID)
	}

	_, err = s.GetByID(ctx, "missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestTokenStore_Len(t *testing.T) {
	s := NewTokenStore(0)
	ctx := context.Background()

	if s.Len(ctx) != 0 {
		t.Error("empty store should have length 0")
	}
	if err := s.Replace(ctx, seedTokens(4)); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if s.Len(ctx) != 4 {
		t.Errorf("Len: got %d, want 4", s.Len(ctx))
	}
}
