// Package main dumps one deterministic derived-board snapshot as JSON.
// Useful for eyeballing generator output and for diffing derivations
// across changes without standing up the server.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"math/rand"
	"os"

	"pulse-board/internal/coalesce"
	"pulse-board/internal/domain"
	"pulse-board/internal/feed"
	"pulse-board/internal/mutate"
	"pulse-board/internal/tokengen"
	"pulse-board/internal/view"
)

type snapshot struct {
	Chain   domain.Chain                      `json:"chain"`
	Columns map[domain.Status][]*domain.Token `json:"columns"`
}

func main() {
	chainFlag := flag.String("chain", "SOL", "Chain to snapshot, SOL or BNB")
	seed := flag.Int64("seed", 1, "Random seed")
	ticks := flag.Int("ticks", 3, "Feed ticks to apply before deriving")
	mutations := flag.Int("mutations", 1, "Mutation passes to apply before deriving")
	out := flag.String("out", "", "Output file (default stdout)")
	flag.Parse()

	logger := log.New(os.Stderr, "[snapshot] ", log.LstdFlags)

	chain := domain.Chain(*chainFlag)
	if !chain.IsValid() {
		logger.Fatalf("unknown chain %q", *chainFlag)
	}

	rng := rand.New(rand.NewSource(*seed))
	gen := tokengen.New(tokengen.Options{Rand: rng})
	tokens := gen.Catalog(chain)

	sim := feed.NewSimulator(feed.Options{Rand: rng, Logger: logger})
	sim.SetTokens(tokens)
	buffer := coalesce.NewBuffer()
	unsubscribe := sim.Subscribe(buffer.Add)
	defer unsubscribe()

	for i := 0; i < *ticks; i++ {
		sim.Tick()
	}
	tokens, _ = buffer.Flush(tokens)

	mutator := mutate.NewMutator(nil, mutate.MutatorOptions{Rand: rng, Logger: logger})
	for i := 0; i < *mutations; i++ {
		tokens, _ = mutator.Pass(tokens)
	}

	snap := snapshot{
		Chain:   chain,
		Columns: make(map[domain.Status][]*domain.Token, len(domain.Statuses)),
	}
	for _, status := range domain.Statuses {
		snap.Columns[status] = view.DeriveVisible(tokens, domain.FilterConfig{}, domain.ColumnSort{}, status, view.DefaultMaxRows)
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			logger.Fatalf("create output: %v", err)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		logger.Fatalf("encode snapshot: %v", err)
	}
}
