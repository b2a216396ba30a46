package coalesce

import (
	"testing"

	"pulse-board/internal/domain"
)

func tok(id string, price float64) *domain.Token {
	return &domain.Token{ID: id, Price: price, PriceChange24h: 1}
}

func upd(id string, price, change float64) domain.MarketUpdate {
	return domain.MarketUpdate{TokenID: id, Price: price, PriceChange24h: change}
}

func TestFlush_LastWriteWins(t *testing.T) {
	b := NewBuffer()
	tokens := []*domain.Token{tok("a", 1), tok("b", 2)}

	b.Add([]domain.MarketUpdate{upd("a", 1.1, 5)})
	b.Add([]domain.MarketUpdate{upd("a", 1.2, 6), upd("a", 1.3, 7)})

	out, changed := b.Flush(tokens)
	if !changed {
		t.Fatal("flush with pending updates should report a change")
	}
	if out[0].Price != 1.3 || out[0].PriceChange24h != 7 {
		t.Errorf("token a should reflect the last update, got price=%f change=%f",
			out[0].Price, out[0].PriceChange24h)
	}
}

func TestFlush_UnaffectedTokensKeepIdentity(t *testing.T) {
	b := NewBuffer()
	a, c := tok("a", 1), tok("c", 3)
	tokens := []*domain.Token{a, c}

	b.Add([]domain.MarketUpdate{upd("a", 1.5, 2)})

	out, changed := b.Flush(tokens)
	if !changed {
		t.Fatal("expected change")
	}
	if out[0] == a {
		t.Error("affected token should be a fresh copy")
	}
	if out[1] != c {
		t.Error("unaffected token must keep its pointer identity")
	}
	if a.Price != 1 {
		t.Error("original token must not be mutated")
	}
}

func TestFlush_EmptyBufferIsNoOp(t *testing.T) {
	b := NewBuffer()
	tokens := []*domain.Token{tok("a", 1)}

	out, changed := b.Flush(tokens)
	if changed {
		t.Error("empty flush should report no change")
	}
	if &out[0] != &tokens[0] {
		t.Error("empty flush should return the input slice")
	}
}

func TestFlush_StaleUpdatesSilentlyDropped(t *testing.T) {
	b := NewBuffer()

	// Updates buffered against the old chain's collection.
	b.Add([]domain.MarketUpdate{upd("sol-1", 9.9, 1), upd("sol-2", 8.8, 2)})

	// The collection was swapped; none of the buffered IDs exist.
	newTokens := []*domain.Token{tok("bnb-1", 1), tok("bnb-2", 2)}
	out, changed := b.Flush(newTokens)
	if changed {
		t.Error("flush of only-stale updates should report no change")
	}
	for i, tk := range out {
		if tk != newTokens[i] {
			t.Error("stale flush must leave the new collection untouched")
		}
	}
	if b.Len() != 0 {
		t.Error("flush should clear the buffer even when all entries are stale")
	}
}

func TestFlush_MixedStaleAndLive(t *testing.T) {
	b := NewBuffer()
	live := tok("live", 1)
	tokens := []*domain.Token{live}

	b.Add([]domain.MarketUpdate{upd("gone", 5, 5), upd("live", 2, 3)})

	out, changed := b.Flush(tokens)
	if !changed {
		t.Fatal("live update should apply")
	}
	if out[0].Price != 2 {
		t.Errorf("live token price: got %f, want 2", out[0].Price)
	}
}

func TestDrop_DiscardsPending(t *testing.T) {
	b := NewBuffer()
	b.Add([]domain.MarketUpdate{upd("a", 2, 1)})

	b.Drop()

	if b.Len() != 0 {
		t.Error("Drop should clear pending updates")
	}
	_, changed := b.Flush([]*domain.Token{tok("a", 1)})
	if changed {
		t.Error("flush after Drop should be a no-op")
	}
}

func TestBuffer_ZeroValueUsable(t *testing.T) {
	var b Buffer
	b.Add([]domain.MarketUpdate{upd("a", 2, 1)})
	if b.Len() != 1 {
		t.Error("zero-value buffer should accept updates")
	}
}
