// Package session wires the feed, coalescer, mutator, inserter, and view
// engine into one per-process dashboard session with an explicit
// lifecycle.
package session

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"pulse-board/internal/coalesce"
	"pulse-board/internal/domain"
	"pulse-board/internal/feed"
	"pulse-board/internal/mutate"
	"pulse-board/internal/observability"
	"pulse-board/internal/store"
	"pulse-board/internal/store/memory"
	"pulse-board/internal/tokengen"
	"pulse-board/internal/view"
)

// Timing defaults for the session's loops.
const (
	// DefaultFrameInterval is the coalescing flush cadence, roughly one
	// display frame at 60 Hz.
	DefaultFrameInterval = 16 * time.Millisecond

	// DefaultSettleDelay is how long the loading indicator stays up
	// after a chain switch.
	DefaultSettleDelay = 400 * time.Millisecond
)

// Options configures a Session. Zero values select the defaults used by
// the live dashboard.
type Options struct {
	Chain          domain.Chain  // initial chain, defaults to SOL
	FrameInterval  time.Duration // defaults to DefaultFrameInterval
	TickInterval   time.Duration // feed tick period, defaults to feed.DefaultTickInterval
	MutateInterval time.Duration // defaults to mutate.DefaultMutateInterval
	InsertMaxWait  time.Duration // defaults to mutate.DefaultInsertMaxWait
	SettleDelay    time.Duration // defaults to DefaultSettleDelay
	MaxRows        int           // defaults to view.DefaultMaxRows
	MaxBacklog     int           // backing collection cap per chain, 0 = unbounded
	Rand           *rand.Rand    // defaults to a time-seeded source
	Now            func() time.Time
	Logger         *log.Logger // defaults to log.Default()
}

// Session owns one chain's token collection and the producers feeding
// it. All methods are safe for concurrent use.
type Session struct {
	logger *log.Logger
	now    func() time.Time
	opts   Options

	store  store.TokenStore
	gen    *tokengen.Generator
	sim    *feed.Simulator
	buffer *coalesce.Buffer
	engine *view.Engine
	window view.Window

	mutRand *rand.Rand // owned by the mutator goroutine
	insRand *rand.Rand // owned by the inserter goroutine

	mu          sync.Mutex
	chain       domain.Chain
	filter      domain.FilterConfig
	sorts       domain.SortConfig
	loading     bool
	settleTimer *time.Timer

	runCtx      context.Context
	chainCancel context.CancelFunc
	chainWG     *sync.WaitGroup
	unsubscribe func()
	closed      bool
}

// New creates a Session seeded for its initial chain. Producers do not
// start until Run.
func New(opts Options) *Session {
	if opts.Chain == "" {
		opts.Chain = domain.ChainSOL
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = DefaultFrameInterval
	}
	if opts.SettleDelay <= 0 {
		opts.SettleDelay = DefaultSettleDelay
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	// The feed, mutator, and inserter each run on their own goroutine,
	// and rand.Rand is not safe for concurrent use. Seed an independent
	// source per producer from the injected one so a seeded parent still
	// yields deterministic behavior.
	s := &Session{
		logger:  opts.Logger,
		now:     opts.Now,
		opts:    opts,
		store:   memory.NewTokenStore(opts.MaxBacklog),
		gen:     tokengen.New(tokengen.Options{Rand: childRand(opts.Rand), Now: opts.Now}),
		buffer:  coalesce.NewBuffer(),
		engine:  view.NewEngine(opts.MaxRows),
		window:  view.NewWindow(),
		chain:   opts.Chain,
		sorts:   domain.DefaultSortConfig(),
		mutRand: childRand(opts.Rand),
		insRand: childRand(opts.Rand),
	}
	s.sim = feed.NewSimulator(feed.Options{
		TickInterval: opts.TickInterval,
		Rand:         childRand(opts.Rand),
		Logger:       opts.Logger,
	})
	s.seed(opts.Chain)
	return s
}

// childRand derives a new source seeded from parent, so callers that
// run on separate goroutines never share one rand.Rand.
func childRand(parent *rand.Rand) *rand.Rand {
	return rand.New(rand.NewSource(parent.Int63()))
}

// Run starts the feed, mutator, inserter, and the per-frame flush loop,
// and blocks until ctx is cancelled. On return all producers are
// stopped and no further callbacks fire.
func (s *Session) Run(ctx context.Context) {
	s.mu.Lock()
	s.runCtx = ctx
	s.startProducersLocked()
	s.mu.Unlock()

	ticker := time.NewTicker(s.opts.FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.teardown()
			return
		case <-ticker.C:
			s.Flush()
		}
	}
}

// Flush applies buffered market updates to the collection. It is a
// no-op when nothing is buffered or the session is closed.
func (s *Session) Flush() {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed || s.buffer.Len() == 0 {
		return
	}

	if _, err := s.store.Apply(context.Background(), s.buffer.Flush); err != nil {
		s.logger.Printf("session: flush failed: %v", err)
	}
}

// SwitchChain tears down the current chain's producers, swaps the
// backing collection for the new chain's, and restarts everything.
// Buffered updates for the old chain are dropped. Switching to the
// already-active chain is a no-op.
func (s *Session) SwitchChain(chain domain.Chain) error {
	if !chain.IsValid() {
		return store.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || chain == s.chain {
		return nil
	}

	s.stopProducersLocked()
	s.buffer.Drop()
	s.engine.Invalidate()

	s.chain = chain
	s.seed(chain)
	s.startProducersLocked()

	s.loading = true
	if s.settleTimer != nil {
		s.settleTimer.Stop()
	}
	s.settleTimer = time.AfterFunc(s.opts.SettleDelay, func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	})

	observability.RecordChainSwitch()
	return nil
}

// Chain reports the active chain.
func (s *Session) Chain() domain.Chain {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chain
}

// Loading reports whether a chain switch is still settling.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// SetFilter replaces the filter configuration.
func (s *Session) SetFilter(f domain.FilterConfig) {
	s.mu.Lock()
	s.filter = f
	s.mu.Unlock()
}

// Filter returns the current filter configuration.
func (s *Session) Filter() domain.FilterConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// SetSortField sets the sort field for one category. Selecting the
// field already active toggles its direction; a new field starts
// descending.
func (s *Session) SetSortField(status domain.Status, field domain.SortField) {
	s.mu.Lock()
	s.sorts.SetField(status, field)
	s.mu.Unlock()
}

// ToggleSortDirection flips the sort direction for one category.
func (s *Session) ToggleSortDirection(status domain.Status) {
	s.mu.Lock()
	s.sorts.ToggleDirection(status)
	s.mu.Unlock()
}

// ResetSort restores one category's sort to insertion order.
func (s *Session) ResetSort(status domain.Status) {
	s.mu.Lock()
	s.sorts.Reset(status)
	s.mu.Unlock()
}

// ResetAllSorts restores every category to insertion order.
func (s *Session) ResetAllSorts() {
	s.mu.Lock()
	s.sorts.ResetAll()
	s.mu.Unlock()
}

// SortConfig returns the current per-category sort configuration.
func (s *Session) SortConfig() domain.SortConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sorts
}

// Column returns the derived visible list for one category.
func (s *Session) Column(status domain.Status) []*domain.Token {
	s.mu.Lock()
	filter := s.filter
	col := s.sorts.For(status)
	s.mu.Unlock()

	tokens, generation := s.store.Snapshot(context.Background())
	return s.engine.Visible(tokens, generation, filter, col, status)
}

// Rows returns the materialized viewport rows for one category.
func (s *Session) Rows(status domain.Status, scrollTop, viewportHeight int) (view.Layout, []view.MaterializedRow) {
	visible := s.Column(status)
	layout := s.window.Layout(len(visible), scrollTop, viewportHeight)
	rows := s.window.Materialize(layout, visible, s.now().UnixMilli())
	return layout, rows
}

// seed replaces the backing collection with the chain's catalog and
// points the feed at it. Caller holds s.mu or is the constructor.
func (s *Session) seed(chain domain.Chain) {
	catalog := s.gen.Catalog(chain)
	if err := s.store.Replace(context.Background(), catalog); err != nil {
		s.logger.Printf("session: seed failed: %v", err)
		return
	}
	s.sim.SetTokens(catalog)
	observability.UpdateBackingSize(chain.String(), len(catalog))
}

// startProducersLocked starts the feed, mutator, and inserter for the
// active chain. Caller holds s.mu; no-op before Run.
func (s *Session) startProducersLocked() {
	if s.runCtx == nil || s.closed {
		return
	}

	ctx, cancel := context.WithCancel(s.runCtx)
	s.chainCancel = cancel
	wg := &sync.WaitGroup{}
	s.chainWG = wg

	chain := s.chain
	mutator := mutate.NewMutator(s.store, mutate.MutatorOptions{
		Interval: s.opts.MutateInterval,
		Rand:     s.mutRand,
		Logger:   s.logger,
	})
	inserter := mutate.NewInserter(s.store, func() *domain.Token {
		return s.gen.NewToken(chain)
	}, mutate.InserterOptions{
		MaxWait: s.opts.InsertMaxWait,
		Rand:    s.insRand,
		Logger:  s.logger,
	})

	wg.Add(2)
	go func() {
		defer wg.Done()
		mutator.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		inserter.Run(ctx)
	}()

	s.unsubscribe = s.sim.Subscribe(s.buffer.Add)
	s.sim.Connect()
}

// stopProducersLocked cancels the current chain's producers and waits
// for them to exit. Caller holds s.mu.
func (s *Session) stopProducersLocked() {
	s.sim.Disconnect()
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	if s.chainCancel != nil {
		s.chainCancel()
		s.chainCancel = nil
	}
	if s.chainWG != nil {
		s.chainWG.Wait()
		s.chainWG = nil
	}
}

// teardown stops everything permanently. Subsequent Flush and
// SwitchChain calls are no-ops.
func (s *Session) teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.stopProducersLocked()
	if s.settleTimer != nil {
		s.settleTimer.Stop()
		s.settleTimer = nil
	}
}
