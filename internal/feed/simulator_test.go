package feed

import (
	"math/rand"
	"testing"

	"pulse-board/internal/domain"
)

func testTokens(n int) []*domain.Token {
	tokens := make([]*domain.Token, n)
	for i := range tokens {
		tokens[i] = &domain.Token{
			ID:    string(rune('a' + i)),
			Price: 1.0,
		}
	}
	return tokens
}

func newTestSimulator(seed int64) *Simulator {
	return NewSimulator(Options{Rand: rand.New(rand.NewSource(seed))})
}

func TestTick_EmptyWorkingSetEmitsNothing(t *testing.T) {
	s := newTestSimulator(1)
	s.SetTokens(nil)

	invoked := false
	s.Subscribe(func(updates []domain.MarketUpdate) {
		invoked = true
	})

	s.Tick()

	if invoked {
		t.Error("tick with empty working set should not invoke listeners")
	}
}

func TestTick_BurstBounds(t *testing.T) {
	s := newTestSimulator(2)
	s.SetTokens(testTokens(10))

	var sizes []int
	s.Subscribe(func(updates []domain.MarketUpdate) {
		sizes = append(sizes, len(updates))
	})

	for i := 0; i < 200; i++ {
		s.Tick()
	}

	if len(sizes) != 200 {
		t.Fatalf("listener invocations: got %d, want 200", len(sizes))
	}
	for _, n := range sizes {
		if n < 1 || n > 3 {
			t.Fatalf("burst size %d outside [1,3]", n)
		}
	}
}

func TestTick_UpdatesReferenceWorkingSet(t *testing.T) {
	s := newTestSimulator(3)
	tokens := testTokens(5)
	s.SetTokens(tokens)

	known := map[string]bool{}
	for _, tok := range tokens {
		known[tok.ID] = true
	}

	s.Subscribe(func(updates []domain.MarketUpdate) {
		for _, u := range updates {
			if !known[u.TokenID] {
				t.Errorf("update references unknown token %q", u.TokenID)
			}
			if u.Price < domain.MinPrice {
				t.Errorf("update price %f below floor", u.Price)
			}
		}
	})

	for i := 0; i < 100; i++ {
		s.Tick()
	}
}

func TestSubscribe_OrderAndUnsubscribe(t *testing.T) {
	s := newTestSimulator(4)
	s.SetTokens(testTokens(3))

	var order []string
	s.Subscribe(func([]domain.MarketUpdate) { order = append(order, "first") })
	unsub := s.Subscribe(func([]domain.MarketUpdate) { order = append(order, "second") })
	s.Subscribe(func([]domain.MarketUpdate) { order = append(order, "third") })

	s.Tick()
	if len(order) != 3 || order[0] != "first" || order[1] != "second" || order[2] != "third" {
		t.Fatalf("listener order: got %v", order)
	}

	order = nil
	unsub()
	unsub() // idempotent
	s.Tick()
	if len(order) != 2 || order[0] != "first" || order[1] != "third" {
		t.Fatalf("after unsubscribe: got %v", order)
	}
}

func TestConnectDisconnect_Idempotent(t *testing.T) {
	s := newTestSimulator(5)
	s.SetTokens(testTokens(3))

	s.Connect()
	s.Connect() // no-op
	s.Disconnect()
	s.Disconnect() // no-op

	// Ticks after disconnect still work when driven manually; the timer
	// is stopped but the emit path stays valid.
	fired := false
	s.Subscribe(func([]domain.MarketUpdate) { fired = true })
	s.Tick()
	if !fired {
		t.Error("manual tick after disconnect should still emit")
	}
}

func TestSetTokens_SwapsWorkingSet(t *testing.T) {
	s := newTestSimulator(6)
	s.SetTokens(testTokens(3))

	replacement := []*domain.Token{{ID: "only", Price: 2.0}}
	s.SetTokens(replacement)

	s.Subscribe(func(updates []domain.MarketUpdate) {
		for _, u := range updates {
			if u.TokenID != "only" {
				t.Errorf("update references token %q from the old set", u.TokenID)
			}
		}
	})

	for i := 0; i < 50; i++ {
		s.Tick()
	}
}
