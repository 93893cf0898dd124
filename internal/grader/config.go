package grader

import (
	"os"
	"strconv"
)

// Config holds all configuration for the grading service client.
type Config struct {
	Endpoint        string
	LogCalls        bool
	SubmitTimeoutMs int
	StatusTimeoutMs int
	PollIntervalMs  int
	MaxPolls        int
}

// DefaultConfig returns a Config with sensible defaults: a local grading
// service, one-second polls, and a sixty-poll budget.
func DefaultConfig() Config {
	return Config{
		Endpoint:        "http://localhost:8000",
		LogCalls:        false,
		SubmitTimeoutMs: 30000,
		StatusTimeoutMs: 10000,
		PollIntervalMs:  1000,
		MaxPolls:        60,
	}
}

// LoadConfig reads client configuration from environment variables, falling
// back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("RUBRIQ_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("RUBRIQ_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	applyPositiveIntEnv(&cfg.SubmitTimeoutMs, "RUBRIQ_SUBMIT_TIMEOUT_MS")
	applyPositiveIntEnv(&cfg.StatusTimeoutMs, "RUBRIQ_STATUS_TIMEOUT_MS")
	applyPositiveIntEnv(&cfg.PollIntervalMs, "RUBRIQ_POLL_INTERVAL_MS")
	applyPositiveIntEnv(&cfg.MaxPolls, "RUBRIQ_MAX_POLLS")

	return cfg
}

func applyPositiveIntEnv(dst *int, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		*dst = n
	}
}
