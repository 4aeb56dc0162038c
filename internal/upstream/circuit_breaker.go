// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

package upstream

import (
	"context"
	"errors"
	"fmt"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/companydesk/internal/config"
	"github.com/tomtom215/companydesk/internal/logging"
	"github.com/tomtom215/companydesk/internal/metrics"
	"github.com/tomtom215/companydesk/internal/models"
)

// BreakerName labels the upstream breaker in logs and metrics.
const BreakerName = "upstream-browse"

// CircuitBreakerClient wraps a Fetcher with the circuit breaker pattern so a
// failing upstream is not hammered by every incoming browse request.
//
// Upstream 4xx responses count as successes: the upstream answered, only the
// request was bad. When the circuit is open FetchCompanies fails fast with
// ErrCircuitOpen.
type CircuitBreakerClient struct {
	fetcher Fetcher
	cb      *gobreaker.CircuitBreaker[*models.Dataset]
	name    string
}

// NewCircuitBreakerClient creates an upstream Client guarded by a breaker
// tuned from cfg.Breaker.
func NewCircuitBreakerClient(cfg *config.UpstreamConfig) *CircuitBreakerClient {
	return NewCircuitBreaker(NewClient(cfg), cfg.Breaker)
}

// NewCircuitBreaker guards an arbitrary Fetcher.
func NewCircuitBreaker(fetcher Fetcher, bc config.BreakerConfig) *CircuitBreakerClient {
	name := BreakerName

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0) // 0 = closed
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[*models.Dataset](gobreaker.Settings{
		Name:        name,
		MaxRequests: bc.MaxRequests,
		Interval:    bc.Interval,
		Timeout:     bc.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < bc.MinRequests {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= bc.FailureRatio

			if shouldTrip {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}

			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()

			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},

		IsSuccessful: func(err error) bool {
			return err == nil || isClientError(err) || errors.Is(err, context.Canceled)
		},
	})

	return &CircuitBreakerClient{
		fetcher: fetcher,
		cb:      cb,
		name:    name,
	}
}

// execute runs fn under breaker protection and records the outcome.
func (cbc *CircuitBreakerClient) execute(fn func() (*models.Dataset, error)) (*models.Dataset, error) {
	result, err := cbc.cb.Execute(fn)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "rejected").Inc()
			logging.Warn().Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
			return nil, fmt.Errorf("%w: %v", ErrCircuitOpen, err)
		}

		if isClientError(err) {
			metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "success").Inc()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbc.name).Set(0)
			return nil, err
		}

		metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "failure").Inc()
		counts := cbc.cb.Counts()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbc.name).Set(float64(counts.ConsecutiveFailures))
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbc.name).Set(0)

	return result, nil
}

// FetchCompanies retrieves the dataset with circuit breaker protection.
func (cbc *CircuitBreakerClient) FetchCompanies(ctx context.Context, params map[string]interface{}) (*models.Dataset, error) {
	return cbc.execute(func() (*models.Dataset, error) {
		return cbc.fetcher.FetchCompanies(ctx, params)
	})
}

// State returns the breaker state as "closed", "half-open" or "open".
func (cbc *CircuitBreakerClient) State() string {
	return stateToString(cbc.cb.State())
}

// Name returns the breaker name used in metrics labels.
func (cbc *CircuitBreakerClient) Name() string {
	return cbc.name
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
