package config

import (
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies PULSE_* environment variable overrides, and
// returns the final Config. An empty path skips the file and uses
// defaults plus overrides. The returned Config has NOT been validated;
// the caller should invoke Config.Validate() after Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known PULSE_* environment variables and
// overwrites the corresponding Config fields when a variable is set.
func applyEnvOverrides(cfg *Config) {
	setStr(&cfg.Server.Addr, "PULSE_SERVER_ADDR")
	setBool(&cfg.Server.MetricsEnabled, "PULSE_SERVER_METRICS_ENABLED")
	setInt64(&cfg.Server.PushIntervalMs, "PULSE_SERVER_PUSH_INTERVAL_MS")

	setStr(&cfg.Session.Chain, "PULSE_SESSION_CHAIN")
	setInt64(&cfg.Session.TickIntervalMs, "PULSE_SESSION_TICK_INTERVAL_MS")
	setInt64(&cfg.Session.FrameIntervalMs, "PULSE_SESSION_FRAME_INTERVAL_MS")
	setInt64(&cfg.Session.MutateIntervalMs, "PULSE_SESSION_MUTATE_INTERVAL_MS")
	setInt64(&cfg.Session.InsertMaxWaitMs, "PULSE_SESSION_INSERT_MAX_WAIT_MS")
	setInt64(&cfg.Session.SettleDelayMs, "PULSE_SESSION_SETTLE_DELAY_MS")
	setInt(&cfg.Session.MaxRows, "PULSE_SESSION_MAX_ROWS")
	setInt(&cfg.Session.MaxBacklog, "PULSE_SESSION_MAX_BACKLOG")

	setStr(&cfg.LogLevel, "PULSE_LOG_LEVEL")
}

// Typed env-var helpers. Each only mutates the target when the
// environment variable is present and non-empty.

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
