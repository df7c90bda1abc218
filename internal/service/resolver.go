package service

import (
	"context"
	"errors"
	"time"

	"github.com/lavida77-ai/currency-converter/internal/domain/model"
	"github.com/lavida77-ai/currency-converter/internal/domain/ports"
	"github.com/lavida77-ai/currency-converter/internal/metrics"
	"github.com/lavida77-ai/currency-converter/pkg/logger"
)

// RateResolver supplies a rate snapshot, preferring the cache over the
// provider. Concurrent misses are not de-duplicated; each one fetches and
// the last cache write wins.
type RateResolver struct {
	repository ports.RateRepository
	cache      ports.RateCache
	metrics    *metrics.Metrics
	log        *logger.Logger
}

func NewRateResolver(repository ports.RateRepository, cache ports.RateCache, m *metrics.Metrics, log *logger.Logger) *RateResolver {
	return &RateResolver{
		repository: repository,
		cache:      cache,
		metrics:    m,
		log:        log,
	}
}

func (r *RateResolver) Resolve(ctx context.Context) (model.RateSnapshot, error) {
	if snapshot, found := r.cache.Read(ctx); found {
		r.log.Debug("Exchange rates found in cache", "currencies", len(snapshot))
		return snapshot, nil
	}

	r.log.Info("Fetching exchange rates from provider")
	start := time.Now()
	snapshot, err := r.repository.FetchLatestRates(ctx)
	if err != nil {
		r.metrics.ObserveUpstreamFetch(fetchOutcome(err), time.Since(start))
		r.log.Error("Failed to fetch exchange rates", "error", err)
		return nil, err
	}
	r.metrics.ObserveUpstreamFetch("success", time.Since(start))

	if err := r.cache.Write(ctx, snapshot); err != nil {
		r.log.Error("Failed to cache exchange rates", "error", err)
	}

	return snapshot, nil
}

func (r *RateResolver) Invalidate(ctx context.Context) error {
	r.log.Info("Invalidating cached exchange rates")
	return r.cache.Clear(ctx)
}

func fetchOutcome(err error) string {
	switch {
	case errors.Is(err, model.ErrMalformedRates):
		return "malformed"
	case errors.Is(err, model.ErrUpstreamUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
