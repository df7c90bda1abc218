package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lavida77-ai/currency-converter/internal/adapter/store"
	"github.com/lavida77-ai/currency-converter/internal/domain/model"
	"github.com/lavida77-ai/currency-converter/internal/metrics"
	"github.com/lavida77-ai/currency-converter/pkg/logger"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type MockStore struct {
	GetFunc    func(ctx context.Context, key string) (string, bool, error)
	SetFunc    func(ctx context.Context, key, value string) error
	DeleteFunc func(ctx context.Context, keys ...string) error
}

func (m *MockStore) Get(ctx context.Context, key string) (string, bool, error) {
	return m.GetFunc(ctx, key)
}

func (m *MockStore) Set(ctx context.Context, key, value string) error {
	return m.SetFunc(ctx, key, value)
}

func (m *MockStore) Delete(ctx context.Context, keys ...string) error {
	return m.DeleteFunc(ctx, keys...)
}

var t0 = time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

func newTestCache() (*RateCache, *store.MemoryStore, *fakeClock) {
	clock := &fakeClock{now: t0}
	kv := store.NewMemoryStore(logger.NewNop())
	return NewRateCache(kv, logger.NewNop(), WithClock(clock.Now)), kv, clock
}

func TestRateCache_WriteThenRead(t *testing.T) {
	ctx := context.Background()
	c, _, clock := newTestCache()

	snapshot := model.RateSnapshot{model.USD: 1, model.CNY: 7.1234, model.JPY: 150.5}
	require.NoError(t, c.Write(ctx, snapshot))

	clock.Advance(23 * time.Hour)
	got, ok := c.Read(ctx)
	require.True(t, ok)
	assert.Equal(t, snapshot, got)
}

func TestRateCache_WriteStoresExpiration(t *testing.T) {
	ctx := context.Background()
	c, kv, _ := newTestCache()

	require.NoError(t, c.Write(ctx, model.RateSnapshot{model.USD: 1}))

	raw, found, err := kv.Get(ctx, ExpirationKey)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "1714636800000", raw) // t0 + 24h in epoch ms

	data, found, err := kv.Get(ctx, DataKey)
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `{"USD":1}`, data)
}

func TestRateCache_ExpiredEntryIsCleared(t *testing.T) {
	ctx := context.Background()
	c, kv, clock := newTestCache()

	require.NoError(t, c.Write(ctx, model.RateSnapshot{model.USD: 1, model.CNY: 7}))

	clock.Advance(25 * time.Hour)
	_, ok := c.Read(ctx)
	assert.False(t, ok)

	_, found, _ := kv.Get(ctx, DataKey)
	assert.False(t, found)
	_, found, _ = kv.Get(ctx, ExpirationKey)
	assert.False(t, found)
}

func TestRateCache_ExactExpirationIsStillValid(t *testing.T) {
	ctx := context.Background()
	c, _, clock := newTestCache()

	require.NoError(t, c.Write(ctx, model.RateSnapshot{model.USD: 1}))

	clock.Advance(Duration)
	_, ok := c.Read(ctx)
	assert.True(t, ok)
}

func TestRateCache_WriteReplacesSnapshot(t *testing.T) {
	ctx := context.Background()
	c, _, _ := newTestCache()

	require.NoError(t, c.Write(ctx, model.RateSnapshot{model.USD: 1, model.EUR: 0.9}))
	require.NoError(t, c.Write(ctx, model.RateSnapshot{model.USD: 1, model.CNY: 7}))

	got, ok := c.Read(ctx)
	require.True(t, ok)
	assert.Equal(t, model.RateSnapshot{model.USD: 1, model.CNY: 7}, got)
}

func TestRateCache_CorruptEntries(t *testing.T) {
	validExpiration := "1714636800000"

	testCases := []struct {
		name       string
		data       string
		expiration string
	}{
		{name: "invalid json", data: "{USD:1", expiration: validExpiration},
		{name: "null data", data: "null", expiration: validExpiration},
		{name: "empty object", data: "{}", expiration: validExpiration},
		{name: "non numeric rate", data: `{"USD":"one"}`, expiration: validExpiration},
		{name: "non numeric expiration", data: `{"USD":1}`, expiration: "tomorrow"},
		{name: "negative expiration", data: `{"USD":1}`, expiration: "-1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			c, kv, _ := newTestCache()

			require.NoError(t, kv.Set(ctx, DataKey, tc.data))
			require.NoError(t, kv.Set(ctx, ExpirationKey, tc.expiration))

			_, ok := c.Read(ctx)
			assert.False(t, ok)

			_, found, _ := kv.Get(ctx, DataKey)
			assert.False(t, found, "corrupt entry should be cleared")
		})
	}
}

func TestRateCache_PartialEntryIsAbsent(t *testing.T) {
	ctx := context.Background()
	c, kv, _ := newTestCache()

	require.NoError(t, kv.Set(ctx, DataKey, `{"USD":1}`))

	_, ok := c.Read(ctx)
	assert.False(t, ok)
}

func TestRateCache_ClearIsIdempotent(t *testing.T) {
	ctx := context.Background()
	c, _, _ := newTestCache()

	require.NoError(t, c.Write(ctx, model.RateSnapshot{model.USD: 1}))
	require.NoError(t, c.Clear(ctx))
	require.NoError(t, c.Clear(ctx))

	_, ok := c.Read(ctx)
	assert.False(t, ok)
}

func TestRateCache_StoreErrors(t *testing.T) {
	ctx := context.Background()
	storeErr := errors.New("disk on fire")

	failing := &MockStore{
		GetFunc: func(ctx context.Context, key string) (string, bool, error) {
			return "", false, storeErr
		},
		SetFunc: func(ctx context.Context, key, value string) error {
			return storeErr
		},
		DeleteFunc: func(ctx context.Context, keys ...string) error {
			return storeErr
		},
	}
	c := NewRateCache(failing, logger.NewNop())

	_, ok := c.Read(ctx)
	assert.False(t, ok)
	assert.ErrorIs(t, c.Write(ctx, model.RateSnapshot{model.USD: 1}), storeErr)
	assert.ErrorIs(t, c.Clear(ctx), storeErr)
}

func TestRateCache_RecordsLookupOutcomes(t *testing.T) {
	ctx := context.Background()
	m := metrics.NewMetrics(prometheus.NewRegistry())
	clock := &fakeClock{now: t0}
	c := NewRateCache(store.NewMemoryStore(logger.NewNop()), logger.NewNop(),
		WithClock(clock.Now), WithMetrics(m))

	c.Read(ctx)
	require.NoError(t, c.Write(ctx, model.RateSnapshot{model.USD: 1}))
	c.Read(ctx)
	clock.Advance(48 * time.Hour)
	c.Read(ctx)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookupsTotal.WithLabelValues(metrics.CacheMiss)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookupsTotal.WithLabelValues(metrics.CacheHit)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookupsTotal.WithLabelValues(metrics.CacheExpired)))
}
