// Package main runs the pulse board server: the simulated market feed,
// the coalescing/mutation pipeline, and the WebSocket push surface.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pulse-board/internal/config"
	"pulse-board/internal/domain"
	"pulse-board/internal/server"
	"pulse-board/internal/session"
)

func main() {
	configPath := flag.String("config", os.Getenv("PULSE_CONFIG"), "Path to TOML config file (optional)")
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	chain := flag.String("chain", "", "Initial chain, SOL or BNB (overrides config)")
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *chain != "" {
		cfg.Session.Chain = *chain
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("Invalid config: %v", err)
	}

	sess := session.New(session.Options{
		Chain:          domain.Chain(cfg.Session.Chain),
		FrameInterval:  cfg.Session.FrameInterval(),
		TickInterval:   cfg.Session.TickInterval(),
		MutateInterval: cfg.Session.MutateInterval(),
		InsertMaxWait:  cfg.Session.InsertMaxWait(),
		SettleDelay:    cfg.Session.SettleDelay(),
		MaxRows:        cfg.Session.MaxRows,
		MaxBacklog:     cfg.Session.MaxBacklog,
		Logger:         logger,
	})

	srv := server.New(cfg.Server, sess, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, initiating graceful shutdown...", sig)
		cancel()

		// Wait for second signal for immediate shutdown
		select {
		case sig := <-sigCh:
			logger.Printf("Received second signal %v, forcing immediate shutdown", sig)
			os.Exit(1)
		case <-time.After(30 * time.Second):
			logger.Println("Graceful shutdown timed out after 30s, forcing exit")
			os.Exit(1)
		case <-done:
			// Normal shutdown completed
		}
	}()

	go sess.Run(ctx)

	err = srv.Run(ctx)
	done <- err
	cancel()

	if err != nil && err != context.Canceled {
		logger.Fatalf("Server error: %v", err)
	}

	logger.Println("Shutdown complete")
}
