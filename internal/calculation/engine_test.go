package calculation

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rgehrsitz/paycalc/internal/cache"
	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(clock *testClock) (*CalculationEngine, *cache.MemoryStore) {
	store := cache.NewMemoryStore(clock.Now)
	engine := NewCalculationEngineWithConfig(domain.DefaultStatutoryRules(), store)
	engine.Now = clock.Now
	return engine, store
}

func TestNewCalculationEngine(t *testing.T) {
	engine := NewCalculationEngine()

	assert.NotNil(t, engine, "Should create engine")
	assert.NotNil(t, engine.Store(), "Should initialize cache store")
	assert.NotNil(t, engine.Logger, "Should initialize logger")
	assert.Equal(t, DefaultCacheTTL, engine.TTL, "Should default to a five minute TTL")
	assert.Equal(t, domain.DefaultStatutoryRules(), engine.Rules, "Should use the default rules")
}

func TestCalculationEngine_SetLogger(t *testing.T) {
	engine := NewCalculationEngine()

	// Test setting a custom logger
	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)

	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	// Test setting nil logger (should use no-op logger)
	engine.SetLogger(nil)

	assert.NotNil(t, engine.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestCalculationEngine_Idempotent(t *testing.T) {
	ctx := context.Background()
	engine, _ := newTestEngine(newTestClock())
	logger := &TestLogger{}
	engine.SetLogger(logger)

	in := testInput(entry("2024-01-15", "09:00", "19:00", 60))

	first, err := engine.Calculate(ctx, in)
	require.NoError(t, err)
	assert.False(t, first.IsFromCache, "first call computes")
	assert.Equal(t, domain.Cents(1500), first.Calculation.OvertimePay.Total)
	assert.Len(t, first.Hash, 64)

	second, err := engine.Calculate(ctx, in)
	require.NoError(t, err)
	assert.True(t, second.IsFromCache, "second call is served from the cache")
	assert.Equal(t, first.Hash, second.Hash)
	assert.Equal(t, first.Calculation, second.Calculation)
	assert.Equal(t, first.Timestamp, second.Timestamp, "timestamp is when the result was computed")

	assert.Contains(t, logger.Messages(), "DEBUG: cache hit %s (%04d-%02d)")
}

func TestCalculationEngine_OrderInvariant(t *testing.T) {
	ctx := context.Background()
	engine, _ := newTestEngine(newTestClock())

	entries := []domain.TimeEntry{
		entry("2024-01-15", "09:00", "19:00", 60),
		entry("2024-01-16", "14:00", "00:00", 0),
		entry("2024-01-13", "09:00", "18:00", 0),
	}
	holidays := []domain.Holiday{
		{Date: domain.MustDate("2024-01-01"), Name: "Ano Novo", AffectsOvertime: true},
		{Date: domain.MustDate("2024-01-16"), Name: "Company day", AffectsOvertime: true},
	}

	a := testInput(entries...)
	a.Holidays = holidays
	b := testInput(entries[1], entries[2], entries[0])
	b.Holidays = []domain.Holiday{holidays[1], holidays[0]}
	b.Entries[0].ID = "6f1c2a7e-2b1d-4f7a-9c55-0a2f3c7d9e11"

	ra, err := engine.Calculate(ctx, a)
	require.NoError(t, err)
	rb, err := engine.Calculate(ctx, b)
	require.NoError(t, err)

	assert.Equal(t, ra.Hash, rb.Hash)
	assert.Equal(t, ra.Calculation, rb.Calculation)
	assert.True(t, rb.IsFromCache)
}

func TestCalculationEngine_InvalidInputNotCached(t *testing.T) {
	ctx := context.Background()
	engine, store := newTestEngine(newTestClock())

	in := testInput(entry("2024-01-15", "09:00", "19:00", 60))
	in.Contract = nil

	res, err := engine.Calculate(ctx, in)
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, ErrMissingContract))

	n, err := store.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "invalid input is never cached")
}

func TestCalculationEngine_TTL(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	engine, _ := newTestEngine(clock)
	in := testInput(entry("2024-01-15", "09:00", "19:00", 60))

	_, err := engine.Calculate(ctx, in)
	require.NoError(t, err)

	clock.Advance(4 * time.Minute)
	res, err := engine.Calculate(ctx, in)
	require.NoError(t, err)
	assert.True(t, res.IsFromCache, "still inside the TTL")

	clock.Advance(time.Minute)
	res, err = engine.Calculate(ctx, in)
	require.NoError(t, err)
	assert.False(t, res.IsFromCache, "expired after five minutes")
	assert.Equal(t, clock.Now(), res.Timestamp)
}

func TestCalculationEngine_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	engine, _ := newTestEngine(newTestClock())
	in := testInput(entry("2024-01-21", "09:00", "13:00", 0)) // Sunday, produces a warning

	first, err := engine.Calculate(ctx, in)
	require.NoError(t, err)
	require.NotEmpty(t, first.Calculation.Warnings)
	original := first.Calculation.Warnings[0]

	first.Calculation.Warnings[0] = "tampered"
	first.Calculation.NetPay = 0

	second, err := engine.Calculate(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, original, second.Calculation.Warnings[0])
	assert.NotZero(t, second.Calculation.NetPay)
}

func TestCalculationEngine_NilStore(t *testing.T) {
	ctx := context.Background()
	engine := NewCalculationEngineWithConfig(domain.DefaultStatutoryRules(), nil)
	in := testInput(entry("2024-01-15", "09:00", "19:00", 60))

	first, err := engine.Calculate(ctx, in)
	require.NoError(t, err)
	second, err := engine.Calculate(ctx, in)
	require.NoError(t, err)

	assert.False(t, second.IsFromCache, "nothing is cached without a store")
	assert.Equal(t, first.Hash, second.Hash)
	assert.Equal(t, first.Calculation, second.Calculation)
}

func TestCalculationEngine_CanceledContext(t *testing.T) {
	engine := NewCalculationEngine()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Calculate(ctx, testInput(entry("2024-01-15", "09:00", "19:00", 60)))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCalculationEngine_CalculateBatch(t *testing.T) {
	ctx := context.Background()
	engine, store := newTestEngine(newTestClock())
	logger := &TestLogger{}
	engine.SetLogger(logger)

	valid := testInput(entry("2024-01-15", "09:00", "19:00", 60))
	invalid := testInput(entry("2024-01-16", "09:00", "09:00", 0))
	other := testInput(entry("2024-01-17", "09:00", "18:00", 60))

	results := engine.CalculateBatch(ctx, []domain.CalculationInput{valid, invalid, other})
	require.Len(t, results, 3, "one result per input")

	assert.Empty(t, results[0].Error)
	assert.Equal(t, domain.Cents(1500), results[0].Calculation.OvertimePay.Total)

	assert.Contains(t, results[1].Error, "input 1")
	assert.Contains(t, results[1].Error, ErrZeroSpan.Error())
	assert.Empty(t, results[1].Hash)
	assert.Equal(t, domain.Cents(0), results[1].Calculation.GrossPay, "failed input yields a zeroed result")
	assert.Equal(t, 2024, results[1].Calculation.Year)

	assert.Empty(t, results[2].Error)
	assert.Equal(t, domain.Cents(8000), results[2].Calculation.RegularPay)

	n, err := store.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n, "only successful inputs are cached")
	assert.Contains(t, logger.Messages(), "ERROR: batch input %d failed: %v")
}

func TestCalculationEngine_Concurrent(t *testing.T) {
	ctx := context.Background()
	engine, store := newTestEngine(newTestClock())
	in := testInput(entry("2024-01-15", "09:00", "19:00", 60))

	const workers = 16
	results := make([]*Result, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := engine.Calculate(ctx, in)
			if assert.NoError(t, err) {
				results[i] = res
			}
		}(i)
	}
	wg.Wait()

	for _, res := range results {
		require.NotNil(t, res)
		assert.Equal(t, results[0].Hash, res.Hash)
		assert.Equal(t, results[0].Calculation, res.Calculation)
	}
	n, err := store.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

// slowStore delays lookups so concurrent callers overlap on the same key
type slowStore struct {
	*cache.MemoryStore
	delay time.Duration
	sets  atomic.Int32
}

func (s *slowStore) Get(ctx context.Context, key string) (cache.Entry, bool, error) {
	time.Sleep(s.delay)
	return s.MemoryStore.Get(ctx, key)
}

func (s *slowStore) Set(ctx context.Context, key string, value cache.Entry, ttl time.Duration) error {
	s.sets.Add(1)
	return s.MemoryStore.Set(ctx, key, value, ttl)
}

func TestCalculationEngine_ConcurrentMissReportedOnce(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	store := &slowStore{MemoryStore: cache.NewMemoryStore(clock.Now), delay: 100 * time.Millisecond}
	engine := NewCalculationEngineWithConfig(domain.DefaultStatutoryRules(), store)
	engine.Now = clock.Now
	in := testInput(entry("2024-01-15", "09:00", "19:00", 60))

	const workers = 8
	var misses atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := engine.Calculate(ctx, in)
			if assert.NoError(t, err) && !res.IsFromCache {
				misses.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), misses.Load(), "only the caller that computed reports a miss")
	assert.Equal(t, int32(1), store.sets.Load(), "the calculation is stored once")
}

func TestCalculationEngine_SQLiteStore(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	store, err := cache.NewSQLiteStore(":memory:", clock.Now)
	require.NoError(t, err)
	defer store.Close()

	engine := NewCalculationEngineWithConfig(domain.DefaultStatutoryRules(), store)
	engine.Now = clock.Now
	in := testInput(entry("2024-01-15", "09:00", "19:00", 60))

	first, err := engine.Calculate(ctx, in)
	require.NoError(t, err)
	second, err := engine.Calculate(ctx, in)
	require.NoError(t, err)

	assert.True(t, second.IsFromCache)
	assert.Equal(t, first.Calculation, second.Calculation, "a SQLite hit decodes to the computed calculation")

	require.NoError(t, engine.ClearCache(ctx))
	third, err := engine.Calculate(ctx, in)
	require.NoError(t, err)
	assert.False(t, third.IsFromCache)
}
