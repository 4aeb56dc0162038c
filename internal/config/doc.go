// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

/*
Package config provides centralized configuration management for Companydesk.

Configuration is layered with Koanf v2: built-in defaults, then an optional
YAML file, then environment variables. Load validates the merged result and
returns an immutable *Config.

# Configuration Sources

  - Defaults: defaultConfig()
  - File: $CONFIG_PATH, else config.yaml / config.yml in the working
    directory, else /etc/companydesk/config.yaml
  - Environment: the explicit table in envMappings; unrelated variables are
    ignored

# Environment Variables

Server:
  - HTTP_HOST (0.0.0.0), HTTP_PORT (3000), HTTP_TIMEOUT (30s)
  - SHUTDOWN_TIMEOUT (10s), ENVIRONMENT (development)

Upstream:
  - UPSTREAM_URL (company browse endpoint), UPSTREAM_TIMEOUT (30s)
  - UPSTREAM_RATE_LIMIT (10 req/s, 0 disables), UPSTREAM_BURST (20)
  - UPSTREAM_BREAKER_MAX_REQUESTS (3), UPSTREAM_BREAKER_INTERVAL (1m),
    UPSTREAM_BREAKER_TIMEOUT (30s), UPSTREAM_BREAKER_MIN_REQUESTS (5),
    UPSTREAM_BREAKER_FAILURE_RATIO (0.6)

Cache:
  - CACHE_TTL (5m), CACHE_CLEANUP_INTERVAL (1m), CACHE_DEDUPE_INFLIGHT (true)

API:
  - API_DEFAULT_PAGE_SIZE (50), API_MAX_PAGE_SIZE (1000)
  - COLLATION_LOCALE (ru): BCP 47 tag for string sort order

Security:
  - CORS_ORIGINS (*, comma-separated)
  - RATE_LIMIT_REQUESTS (300), RATE_LIMIT_WINDOW (1m), DISABLE_RATE_LIMIT (false)

Logging:
  - LOG_LEVEL (info), LOG_FORMAT (json), LOG_CALLER (false)

# Example YAML

	server:
	  port: 3000
	upstream:
	  url: https://erp.example.com/pwa6/api/company/ef/linq/browse/all
	  breaker:
	    failure_ratio: 0.5
	cache:
	  ttl: 10m
	api:
	  collation_locale: ru

# Thread Safety

The Config struct is immutable after Load() returns, making it safe for concurrent
access from multiple goroutines without synchronization.
*/
package config
