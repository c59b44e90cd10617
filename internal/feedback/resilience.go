package feedback

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"
)

// ResilientSource wraps a Source with retry and circuit breaker
// protection so one flaky platform cannot stall a whole collection run.
type ResilientSource struct {
	inner   Source
	breaker *gobreaker.CircuitBreaker
}

// NewResilientSource wraps the given source. The breaker opens after
// three consecutive failures and probes again after 30 seconds.
func NewResilientSource(inner Source) *ResilientSource {
	settings := gobreaker.Settings{
		Name:        inner.Name(),
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("WARNING: source %s circuit breaker %s -> %s", name, from, to)
		},
	}
	return &ResilientSource{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

// Name implements Source.
func (r *ResilientSource) Name() string { return r.inner.Name() }

// FetchInsights implements Source. Transient errors are retried with
// exponential backoff; context cancellation is treated as permanent.
func (r *ResilientSource) FetchInsights(ctx context.Context, limit int, since time.Time) ([]*Insight, error) {
	result, err := r.breaker.Execute(func() (interface{}, error) {
		bo := backoff.NewExponentialBackOff()
		bo.InitialInterval = 500 * time.Millisecond
		bo.MaxInterval = 5 * time.Second
		bo.MaxElapsedTime = 30 * time.Second

		var insights []*Insight
		operation := func() error {
			var fetchErr error
			insights, fetchErr = r.inner.FetchInsights(ctx, limit, since)
			if fetchErr != nil {
				if ctx.Err() != nil {
					return backoff.Permanent(fetchErr)
				}
				log.Printf("WARNING: source %s fetch failed, retrying: %v", r.inner.Name(), fetchErr)
			}
			return fetchErr
		}

		if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
			return nil, err
		}
		return insights, nil
	})
	if err != nil {
		return nil, fmt.Errorf("source %s: %w", r.inner.Name(), err)
	}
	return result.([]*Insight), nil
}
