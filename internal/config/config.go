// Package config defines the top-level configuration for the pulse board
// server and provides validation helpers.
package config

import (
	"fmt"
	"strings"
	"time"

	"pulse-board/internal/domain"
)

// Config is the root configuration structure. Fields are populated from a
// TOML file and then optionally overridden by PULSE_* environment
// variables.
type Config struct {
	Server   ServerConfig  `toml:"server"`
	Session  SessionConfig `toml:"session"`
	LogLevel string        `toml:"log_level"`
}

// ServerConfig holds HTTP/WebSocket listener parameters.
type ServerConfig struct {
	Addr           string `toml:"addr"`
	MetricsEnabled bool   `toml:"metrics_enabled"`
	PushIntervalMs int64  `toml:"push_interval_ms"`
}

// SessionConfig holds the dashboard session's timing and sizing knobs.
// Intervals are in milliseconds.
type SessionConfig struct {
	Chain            string `toml:"chain"`
	TickIntervalMs   int64  `toml:"tick_interval_ms"`
	FrameIntervalMs  int64  `toml:"frame_interval_ms"`
	MutateIntervalMs int64  `toml:"mutate_interval_ms"`
	InsertMaxWaitMs  int64  `toml:"insert_max_wait_ms"`
	SettleDelayMs    int64  `toml:"settle_delay_ms"`
	MaxRows          int    `toml:"max_rows"`
	MaxBacklog       int    `toml:"max_backlog"`
}

// Defaults returns the built-in configuration matching the live
// dashboard's timings.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Addr:           ":8080",
			MetricsEnabled: true,
			PushIntervalMs: 250,
		},
		Session: SessionConfig{
			Chain:            string(domain.ChainSOL),
			TickIntervalMs:   2000,
			FrameIntervalMs:  16,
			MutateIntervalMs: 2000,
			InsertMaxWaitMs:  15000,
			SettleDelayMs:    400,
			MaxRows:          12,
			MaxBacklog:       0,
		},
		LogLevel: "info",
	}
}

// TickInterval returns the feed tick period.
func (c SessionConfig) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMs) * time.Millisecond
}

// FrameInterval returns the coalescing flush cadence.
func (c SessionConfig) FrameInterval() time.Duration {
	return time.Duration(c.FrameIntervalMs) * time.Millisecond
}

// MutateInterval returns the mutation pass period.
func (c SessionConfig) MutateInterval() time.Duration {
	return time.Duration(c.MutateIntervalMs) * time.Millisecond
}

// InsertMaxWait returns the upper bound on the random insertion wait.
func (c SessionConfig) InsertMaxWait() time.Duration {
	return time.Duration(c.InsertMaxWaitMs) * time.Millisecond
}

// SettleDelay returns the post-switch loading indicator duration.
func (c SessionConfig) SettleDelay() time.Duration {
	return time.Duration(c.SettleDelayMs) * time.Millisecond
}

// PushInterval returns the client snapshot push cadence.
func (c ServerConfig) PushInterval() time.Duration {
	return time.Duration(c.PushIntervalMs) * time.Millisecond
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks Config for obviously invalid or missing values and
// returns a combined error describing every problem found.
func (c *Config) Validate() error {
	var errs []string

	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Sprintf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel))
	}

	if c.Server.Addr == "" {
		errs = append(errs, "server: addr must not be empty")
	}
	if c.Server.PushIntervalMs <= 0 {
		errs = append(errs, "server: push_interval_ms must be positive")
	}

	if !domain.Chain(c.Session.Chain).IsValid() {
		errs = append(errs, fmt.Sprintf("session: unknown chain %q (valid: SOL, BNB)", c.Session.Chain))
	}
	if c.Session.TickIntervalMs <= 0 {
		errs = append(errs, "session: tick_interval_ms must be positive")
	}
	if c.Session.FrameIntervalMs <= 0 {
		errs = append(errs, "session: frame_interval_ms must be positive")
	}
	if c.Session.MutateIntervalMs <= 0 {
		errs = append(errs, "session: mutate_interval_ms must be positive")
	}
	if c.Session.InsertMaxWaitMs <= 0 {
		errs = append(errs, "session: insert_max_wait_ms must be positive")
	}
	if c.Session.SettleDelayMs < 0 {
		errs = append(errs, "session: settle_delay_ms must not be negative")
	}
	if c.Session.MaxRows <= 0 {
		errs = append(errs, "session: max_rows must be positive")
	}
	if c.Session.MaxBacklog < 0 {
		errs = append(errs, "session: max_backlog must not be negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
