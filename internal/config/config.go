package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress          string
	DatabaseURI         string
	GatewayAddress      string
	GatewayCommerceCode string
	GatewayAPIKey       string
	ReturnURL           string
	JWTSecret           string
	PendingTTL          time.Duration
	SweepInterval       time.Duration
	ShutdownTimeout     time.Duration
}

const (
	defaultRunAddress      = ":8080"
	defaultJWTSecret       = "change-me-in-production"
	defaultCommerceCode    = "597055555532"
	defaultPendingTTL      = 15 * time.Minute
	defaultSweepInterval   = time.Minute
	defaultShutdownTimeout = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:          getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:         getString(lookup, "DATABASE_URI", ""),
		GatewayAddress:      getString(lookup, "GATEWAY_ADDRESS", ""),
		GatewayCommerceCode: getString(lookup, "GATEWAY_COMMERCE_CODE", defaultCommerceCode),
		GatewayAPIKey:       getString(lookup, "GATEWAY_API_KEY", ""),
		ReturnURL:           getString(lookup, "RETURN_URL", ""),
		JWTSecret:           getString(lookup, "JWT_SECRET", defaultJWTSecret),
		PendingTTL:          getDuration(lookup, "PENDING_TTL", defaultPendingTTL),
		SweepInterval:       getDuration(lookup, "SWEEP_INTERVAL", defaultSweepInterval),
		ShutdownTimeout:     getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		pendingTTLStr      = cfg.PendingTTL.String()
		sweepIntervalStr   = cfg.SweepInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.GatewayAddress, "g", cfg.GatewayAddress, "Payment gateway base URL")
	fs.StringVar(&cfg.GatewayCommerceCode, "commerce-code", cfg.GatewayCommerceCode, "Gateway commerce code")
	fs.StringVar(&cfg.GatewayAPIKey, "gateway-key", cfg.GatewayAPIKey, "Gateway API key")
	fs.StringVar(&cfg.ReturnURL, "return-url", cfg.ReturnURL, "Default URL the gateway redirects back to")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&pendingTTLStr, "pending-ttl", pendingTTLStr, "Lifetime of a pending gateway transaction")
	fs.StringVar(&sweepIntervalStr, "sweep-interval", sweepIntervalStr, "Interval between pending registry sweeps")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.PendingTTL, err = time.ParseDuration(pendingTTLStr); err != nil {
		return nil, fmt.Errorf("invalid pending ttl: %w", err)
	}

	if cfg.SweepInterval, err = time.ParseDuration(sweepIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid sweep interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = string(content)
	}

	if cfg.PendingTTL <= 0 {
		cfg.PendingTTL = defaultPendingTTL
	}

	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaultSweepInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.GatewayAddress == "" {
		return nil, fmt.Errorf("payment gateway address must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
