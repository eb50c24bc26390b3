package providers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/Hazhaz1412/smart-city-iot/pkg/logger"
	"github.com/Hazhaz1412/smart-city-iot/pkg/metrics"
)

// BreakerConfig holds configuration for a provider circuit breaker
type BreakerConfig struct {
	MaxRequests uint32        // max requests allowed in half-open state
	Interval    time.Duration // cyclic period of the closed state to clear counts
	Timeout     time.Duration // period of the open state before transitioning to half-open
}

// DefaultBreakerConfig returns sensible defaults for external API providers
var DefaultBreakerConfig = BreakerConfig{
	MaxRequests: 5,
	Interval:    1 * time.Minute,
	Timeout:     30 * time.Second,
}

// BreakerRegistry manages circuit breakers per external provider
type BreakerRegistry struct {
	mu       sync.RWMutex
	breakers map[string]*gobreaker.CircuitBreaker[any]
	config   BreakerConfig
}

// NewBreakerRegistry creates a new registry with the given config
func NewBreakerRegistry(config BreakerConfig) *BreakerRegistry {
	return &BreakerRegistry{
		breakers: make(map[string]*gobreaker.CircuitBreaker[any]),
		config:   config,
	}
}

// GetBreaker returns (or creates) a circuit breaker for the given provider slug
func (r *BreakerRegistry) GetBreaker(slug string) *gobreaker.CircuitBreaker[any] {
	r.mu.RLock()
	cb, exists := r.breakers[slug]
	r.mu.RUnlock()

	if exists {
		return cb
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring write lock
	if cb, exists = r.breakers[slug]; exists {
		return cb
	}

	settings := gobreaker.Settings{
		Name:        slug,
		MaxRequests: r.config.MaxRequests,
		Interval:    r.config.Interval,
		Timeout:     r.config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn(context.Background(), "Circuit breaker state change",
				zap.String("provider", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)

			m := metrics.GetMetrics()
			m.SetCircuitBreakerState(name, stateToInt(to))
			if to == gobreaker.StateOpen {
				m.RecordCircuitBreakerTrip(name)
			}
		},
	}

	cb = gobreaker.NewCircuitBreaker[any](settings)
	r.breakers[slug] = cb

	return cb
}

// Execute runs the given function through the named circuit breaker
func (r *BreakerRegistry) Execute(ctx context.Context, slug string, fn func() (any, error)) (any, error) {
	cb := r.GetBreaker(slug)

	result, err := cb.Execute(func() (any, error) {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return fn()
	})

	if err != nil {
		if err == gobreaker.ErrOpenState {
			logger.Warn(ctx, "Circuit breaker open, rejecting request",
				zap.String("provider", slug))
			return nil, fmt.Errorf("provider %s unavailable: circuit breaker open", slug)
		}
		if err == gobreaker.ErrTooManyRequests {
			logger.Warn(ctx, "Circuit breaker half-open, too many requests",
				zap.String("provider", slug))
			return nil, fmt.Errorf("provider %s unavailable: too many requests in half-open state", slug)
		}
	}

	return result, err
}

// BreakerStatus represents the current state of a provider circuit breaker
type BreakerStatus struct {
	Provider         string `json:"provider"`
	State            string `json:"state"`
	Requests         uint32 `json:"requests"`
	TotalSuccesses   uint32 `json:"total_successes"`
	TotalFailures    uint32 `json:"total_failures"`
	ConsecutiveSucc  uint32 `json:"consecutive_successes"`
	ConsecutiveFails uint32 `json:"consecutive_failures"`
}

// Status returns the current state of all circuit breakers
func (r *BreakerRegistry) Status() map[string]BreakerStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	status := make(map[string]BreakerStatus)
	for slug, cb := range r.breakers {
		counts := cb.Counts()
		status[slug] = BreakerStatus{
			Provider:         slug,
			State:            cb.State().String(),
			Requests:         counts.Requests,
			TotalSuccesses:   counts.TotalSuccesses,
			TotalFailures:    counts.TotalFailures,
			ConsecutiveSucc:  counts.ConsecutiveSuccesses,
			ConsecutiveFails: counts.ConsecutiveFailures,
		}
	}
	return status
}

var (
	globalRegistry *BreakerRegistry
	registryOnce   sync.Once
)

// GetGlobalRegistry returns the global circuit breaker registry
func GetGlobalRegistry() *BreakerRegistry {
	registryOnce.Do(func() {
		globalRegistry = NewBreakerRegistry(DefaultBreakerConfig)
	})
	return globalRegistry
}

// SetGlobalRegistry allows overriding the global registry (useful for testing)
func SetGlobalRegistry(r *BreakerRegistry) {
	globalRegistry = r
}

// WithBreaker wraps a provider call with circuit breaker protection
func WithBreaker[T any](ctx context.Context, slug string, fn func() (T, error)) (T, error) {
	registry := GetGlobalRegistry()

	result, err := registry.Execute(ctx, slug, func() (any, error) {
		return fn()
	})

	if err != nil {
		var zero T
		return zero, err
	}

	return result.(T), nil
}

// stateToInt converts a circuit breaker state to an integer for metrics.
// 0=closed, 1=half-open, 2=open
func stateToInt(state gobreaker.State) int {
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
