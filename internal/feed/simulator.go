// Package feed implements the simulated market feed: a local publisher that
// emits bursts of price deltas on a fixed tick, standing in for a real
// exchange stream.
package feed

import (
	"log"
	"math/rand"
	"sync"
	"time"

	"pulse-board/internal/domain"
	"pulse-board/internal/observability"
)

// DefaultTickInterval is the emission period used when none is given.
const DefaultTickInterval = 2 * time.Second

// Listener receives one batch of updates per tick. Listeners are invoked
// synchronously in subscription order.
type Listener func([]domain.MarketUpdate)

// Options contains configuration for creating a Simulator.
type Options struct {
	// TickInterval is the emission period. Default: 2s.
	TickInterval time.Duration
	// MinBurst and MaxBurst bound the number of updates per tick.
	// Defaults: 1 and 3.
	MinBurst int
	MaxBurst int
	// Rand is the randomness source. Defaults to a time-seeded source.
	Rand   *rand.Rand
	Logger *log.Logger
}

// Simulator emits MarketUpdate batches for a working set of tokens. It is
// safe for concurrent use; the timer loop, SetTokens and Subscribe may be
// called from different goroutines.
type Simulator struct {
	tickInterval time.Duration
	minBurst     int
	maxBurst     int
	logger       *log.Logger

	mu        sync.Mutex
	rng       *rand.Rand
	tokens    []*domain.Token
	listeners []listenerEntry
	nextSubID int
	stop      chan struct{}
	wg        sync.WaitGroup
}

type listenerEntry struct {
	id int
	fn Listener
}

// NewSimulator creates a Simulator.
func NewSimulator(opts Options) *Simulator {
	tick := opts.TickInterval
	if tick == 0 {
		tick = DefaultTickInterval
	}
	minBurst := opts.MinBurst
	if minBurst == 0 {
		minBurst = 1
	}
	maxBurst := opts.MaxBurst
	if maxBurst == 0 {
		maxBurst = 3
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Simulator{
		tickInterval: tick,
		minBurst:     minBurst,
		maxBurst:     maxBurst,
		logger:       logger,
		rng:          rng,
	}
}

// SetTokens replaces the working set the simulator draws from. Subsequent
// ticks pick only from this set.
func (s *Simulator) SetTokens(tokens []*domain.Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = tokens
}

// Connect starts the repeating tick timer. Idempotent: a no-op when already
// connected.
func (s *Simulator) Connect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		return
	}
	stop := make(chan struct{})
	s.stop = stop

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.tickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				s.Tick()
			}
		}
	}()
}

// Disconnect stops the timer. Safe to call when not connected. A tick that
// already fired completes before Disconnect returns.
func (s *Simulator) Disconnect() {
	s.mu.Lock()
	if s.stop == nil {
		s.mu.Unlock()
		return
	}
	close(s.stop)
	s.stop = nil
	s.mu.Unlock()
	s.wg.Wait()
}

// Subscribe registers a listener and returns an unsubscribe function.
// Unsubscribing is idempotent.
func (s *Simulator) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.listeners = append(s.listeners, listenerEntry{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, e := range s.listeners {
			if e.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// Tick performs one emission pass: it picks a random burst of tokens from
// the working set (with replacement; duplicate picks produce duplicate
// updates that the coalescer later resolves last-write-wins) and emits the
// batch to all listeners. An empty working set emits nothing.
func (s *Simulator) Tick() {
	s.mu.Lock()
	if len(s.tokens) == 0 {
		s.mu.Unlock()
		return
	}

	count := s.minBurst + s.rng.Intn(s.maxBurst-s.minBurst+1)
	updates := make([]domain.MarketUpdate, 0, count)
	for i := 0; i < count; i++ {
		t := s.tokens[s.rng.Intn(len(s.tokens))]
		// ±5% price move, same delta added to the cumulative 24h change.
		changePct := s.rng.Float64()*10 - 5
		updates = append(updates, domain.MarketUpdate{
			TokenID:        t.ID,
			Price:          domain.ClampPrice(t.Price * (1 + changePct/100)),
			PriceChange24h: t.PriceChange24h + changePct,
		})
	}

	listeners := make([]listenerEntry, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	observability.RecordFeedTick(len(updates))

	for _, e := range listeners {
		e.fn(updates)
	}
}
