// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

package config

import (
	"fmt"
	"time"
)

// DefaultUpstreamURL is the company browse endpoint of the line-of-business API.
const DefaultUpstreamURL = "https://dev01.projectmate.ru/pwa6/api/company/ef/linq/browse/all"

// Config holds all application configuration loaded from defaults, an optional
// config file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting via environment variables
//
// Example - Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	client := upstream.NewCircuitBreakerClient(&cfg.Upstream)
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access from multiple goroutines.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Upstream UpstreamConfig `koanf:"upstream"`
	Cache    CacheConfig    `koanf:"cache"`
	API      APIConfig      `koanf:"api"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // "development", "staging", "production"
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// UpstreamConfig holds settings for the company browse API the proxy fronts.
//
// Environment Variables:
//   - UPSTREAM_URL: browse endpoint (default: DefaultUpstreamURL)
//   - UPSTREAM_TIMEOUT: per-request timeout (default: 30s)
//   - UPSTREAM_RATE_LIMIT: outbound requests per second, 0 disables (default: 10)
//   - UPSTREAM_BURST: outbound burst size (default: 20)
//   - UPSTREAM_BREAKER_*: circuit breaker tuning, see BreakerConfig
type UpstreamConfig struct {
	URL       string        `koanf:"url"`
	Timeout   time.Duration `koanf:"timeout"`
	RateLimit float64       `koanf:"rate_limit"`
	Burst     int           `koanf:"burst"`
	Breaker   BreakerConfig `koanf:"breaker"`
}

// BreakerConfig tunes the upstream circuit breaker.
//
// The breaker opens when, within one Interval, at least MinRequests calls were
// made and the share of failures reached FailureRatio. After Timeout it lets
// MaxRequests probe calls through in the half-open state.
type BreakerConfig struct {
	MaxRequests  uint32        `koanf:"max_requests"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

// CacheConfig holds dataset cache settings.
//
// Environment Variables:
//   - CACHE_TTL: lifetime of a cached upstream dataset (default: 5m)
//   - CACHE_CLEANUP_INTERVAL: how often the janitor sweeps expired entries (default: 1m)
//   - CACHE_DEDUPE_INFLIGHT: share one upstream fetch between concurrent misses (default: true)
type CacheConfig struct {
	TTL             time.Duration `koanf:"ttl"`
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
	DedupeInflight  bool          `koanf:"dedupe_inflight"`
}

// APIConfig holds pagination and ordering settings
type APIConfig struct {
	DefaultPageSize int    `koanf:"default_page_size"`
	MaxPageSize     int    `koanf:"max_page_size"`
	CollationLocale string `koanf:"collation_locale"` // BCP 47 tag used for string sort order
}

// SecurityConfig holds inbound rate limiting and CORS settings
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration using the layered approach:
//  1. Built-in defaults
//  2. Config file (config.yaml if exists, or path specified in CONFIG_PATH env var)
//  3. Environment variables
//
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
