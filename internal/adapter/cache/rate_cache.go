package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lavida77-ai/currency-converter/internal/domain/model"
	"github.com/lavida77-ai/currency-converter/internal/domain/ports"
	"github.com/lavida77-ai/currency-converter/internal/metrics"
	"github.com/lavida77-ai/currency-converter/pkg/logger"
	"github.com/lavida77-ai/currency-converter/pkg/utils"
)

const (
	DataKey       = "exchangeRateCache"
	ExpirationKey = "exchangeRateExpiration"

	// Duration is how long a written snapshot stays valid.
	Duration = 24 * time.Hour
)

// RateCache holds a single rate snapshot and its expiration in a
// KeyValueStore. Corrupt entries are cleared and read as absent.
type RateCache struct {
	store   ports.KeyValueStore
	now     func() time.Time
	metrics *metrics.Metrics
	log     *logger.Logger
}

type Option func(*RateCache)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *RateCache) {
		c.now = now
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *RateCache) {
		c.metrics = m
	}
}

func NewRateCache(store ports.KeyValueStore, log *logger.Logger, opts ...Option) *RateCache {
	c := &RateCache{
		store: store,
		now:   time.Now,
		log:   log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *RateCache) Read(ctx context.Context) (model.RateSnapshot, bool) {
	data, dataFound, err := c.store.Get(ctx, DataKey)
	if err != nil {
		c.log.Warn("Failed to read cached rates", "error", err)
		c.metrics.ObserveCacheLookup(metrics.CacheMiss)
		return nil, false
	}

	rawExpiration, expFound, err := c.store.Get(ctx, ExpirationKey)
	if err != nil {
		c.log.Warn("Failed to read cache expiration", "error", err)
		c.metrics.ObserveCacheLookup(metrics.CacheMiss)
		return nil, false
	}

	if !dataFound || !expFound {
		c.log.Debug("Cache miss")
		c.metrics.ObserveCacheLookup(metrics.CacheMiss)
		return nil, false
	}

	expiration, err := utils.ParseEpochMillis(rawExpiration)
	if err != nil {
		c.discard(ctx, "invalid expiration", err)
		return nil, false
	}

	if c.now().After(expiration) {
		c.log.Debug("Cache entry expired", "expired_at", expiration)
		c.metrics.ObserveCacheLookup(metrics.CacheExpired)
		if err := c.Clear(ctx); err != nil {
			c.log.Warn("Failed to clear expired cache entry", "error", err)
		}
		return nil, false
	}

	snapshot, err := decodeSnapshot(data)
	if err != nil {
		c.discard(ctx, "invalid data", err)
		return nil, false
	}

	c.log.Debug("Cache hit", "currencies", len(snapshot), "expires_at", expiration)
	c.metrics.ObserveCacheLookup(metrics.CacheHit)
	return snapshot, true
}

func (c *RateCache) Write(ctx context.Context, snapshot model.RateSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode rates: %w", err)
	}

	expiration := c.now().Add(Duration)

	if err := c.store.Set(ctx, DataKey, string(data)); err != nil {
		return fmt.Errorf("failed to store rates: %w", err)
	}
	if err := c.store.Set(ctx, ExpirationKey, utils.FormatEpochMillis(expiration)); err != nil {
		return fmt.Errorf("failed to store expiration: %w", err)
	}

	c.log.Debug("Cache set", "currencies", len(snapshot), "expires_at", expiration)
	return nil
}

func (c *RateCache) Clear(ctx context.Context) error {
	if err := c.store.Delete(ctx, DataKey, ExpirationKey); err != nil {
		return fmt.Errorf("failed to clear rate cache: %w", err)
	}
	c.log.Debug("Cache cleared")
	return nil
}

func (c *RateCache) discard(ctx context.Context, reason string, cause error) {
	c.log.Warn("Discarding corrupt cache entry", "reason", reason, "error", cause)
	c.metrics.ObserveCacheLookup(metrics.CacheCorrupt)
	if err := c.Clear(ctx); err != nil {
		c.log.Warn("Failed to clear corrupt cache entry", "error", err)
	}
}

func decodeSnapshot(data string) (model.RateSnapshot, error) {
	var snapshot model.RateSnapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return nil, err
	}
	if len(snapshot) == 0 {
		return nil, errors.New("empty snapshot")
	}
	return snapshot, nil
}
