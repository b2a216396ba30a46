package mutate

import (
	"context"
	"log"
	"math/rand"
	"time"

	"pulse-board/internal/domain"
	"pulse-board/internal/observability"
	"pulse-board/internal/store"
)

// DefaultInsertMaxWait bounds the random wait between insertions.
const DefaultInsertMaxWait = 15 * time.Second

// InserterOptions configures an Inserter.
type InserterOptions struct {
	MaxWait time.Duration // defaults to DefaultInsertMaxWait
	Rand    *rand.Rand    // defaults to a time-seeded source
	Logger  *log.Logger   // defaults to log.Default()
}

// Inserter prepends synthetic new listings to the collection at random
// intervals drawn uniformly from [0, MaxWait).
type Inserter struct {
	store    store.TokenStore
	newToken func() *domain.Token
	maxWait  time.Duration
	rng      *rand.Rand
	logger   *log.Logger
}

// NewInserter creates an Inserter. newToken synthesizes one fresh listing
// per call.
func NewInserter(st store.TokenStore, newToken func() *domain.Token, opts InserterOptions) *Inserter {
	if opts.MaxWait <= 0 {
		opts.MaxWait = DefaultInsertMaxWait
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Inserter{
		store:    st,
		newToken: newToken,
		maxWait:  opts.MaxWait,
		rng:      opts.Rand,
		logger:   opts.Logger,
	}
}

// Run inserts listings until ctx is cancelled. Cancellation while a wait
// is pending stops the timer without firing.
func (ins *Inserter) Run(ctx context.Context) {
	timer := time.NewTimer(ins.nextWait())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			ins.insertOne(ctx)
			timer.Reset(ins.nextWait())
		}
	}
}

func (ins *Inserter) insertOne(ctx context.Context) {
	t := ins.newToken()
	if err := ins.store.Prepend(ctx, t); err != nil {
		ins.logger.Printf("inserter: prepend failed: %v", err)
		return
	}
	observability.RecordInsertion()
}

func (ins *Inserter) nextWait() time.Duration {
	return time.Duration(ins.rng.Int63n(int64(ins.maxWait)))
}
