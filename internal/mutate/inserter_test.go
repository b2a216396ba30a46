package mutate

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"pulse-board/internal/domain"
	"pulse-board/internal/store/memory"
)

func TestInserter_NextWaitWithinBounds(t *testing.T) {
	ins := NewInserter(nil, nil, InserterOptions{
		MaxWait: 15 * time.Second,
		Rand:    rand.New(rand.NewSource(1)),
	})

	for i := 0; i < 1000; i++ {
		w := ins.nextWait()
		if w < 0 || w >= 15*time.Second {
			t.Fatalf("wait %v outside [0, 15s)", w)
		}
	}
}

func TestInserter_InsertOnePrepends(t *testing.T) {
	st := memory.NewTokenStore(0)
	ctx := context.Background()
	if err := st.Replace(ctx, []*domain.Token{{ID: "old"}}); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	n := 0
	ins := NewInserter(st, func() *domain.Token {
		n++
		return &domain.Token{ID: "fresh", Status: domain.StatusNew}
	}, InserterOptions{Rand: rand.New(rand.NewSource(2))})

	ins.insertOne(ctx)

	if n != 1 {
		t.Fatalf("newToken calls: got %d, want 1", n)
	}
	got, _ := st.Snapshot(ctx)
	if len(got) != 2 || got[0].ID != "fresh" {
		t.Errorf("listing should be prepended, head is %s", got[0].ID)
	}
}

func TestInserter_RunStopsOnCancel(t *testing.T) {
	st := memory.NewTokenStore(0)
	ins := NewInserter(st, func() *domain.Token {
		return &domain.Token{ID: "fresh", Status: domain.StatusNew}
	}, InserterOptions{
		MaxWait: time.Millisecond,
		Rand:    rand.New(rand.NewSource(3)),
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		ins.Run(ctx)
		close(done)
	}()

	// Let a few insertions land, then cancel.
	deadline := time.After(time.Second)
	for st.Len(context.Background()) == 0 {
		select {
		case <-deadline:
			t.Fatal("no insertion within deadline")
		case <-time.After(time.Millisecond):
		}
	}
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancellation")
	}

	// No orphaned timers: the count stays put after Run returns.
	count := st.Len(context.Background())
	time.Sleep(20 * time.Millisecond)
	if got := st.Len(context.Background()); got != count {
		t.Errorf("insertions after teardown: %d -> %d", count, got)
	}
}
