package calculation

import (
	"context"
	"fmt"
	"time"

	"github.com/rgehrsitz/paycalc/internal/cache"
	"github.com/rgehrsitz/paycalc/internal/domain"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheTTL is how long a calculation stays in the cache
const DefaultCacheTTL = 5 * time.Minute

// Result is a calculation together with the key it is cached under
type Result struct {
	Calculation domain.PayrollCalculation `json:"calculation" yaml:"calculation"`
	Hash        string                    `json:"hash" yaml:"hash"`
	Timestamp   time.Time                 `json:"timestamp" yaml:"timestamp"`
	IsFromCache bool                      `json:"is_from_cache" yaml:"is_from_cache"`
	Error       string                    `json:"error,omitempty" yaml:"error,omitempty"`
}

// CalculationEngine validates inputs, computes monthly payroll and memoizes the results.
// It is safe for concurrent use; concurrent misses for the same input are computed once.
type CalculationEngine struct {
	Rules  domain.StatutoryRules
	TTL    time.Duration
	Logger Logger
	Now    func() time.Time

	store  cache.Store
	flight singleflight.Group
}

// NewCalculationEngine creates an engine with the default statutory rules and an
// in-memory cache
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithConfig(domain.DefaultStatutoryRules(), cache.NewMemoryStore(nil))
}

// NewCalculationEngineWithConfig creates an engine with the given rules and cache store.
// A nil store disables caching.
func NewCalculationEngineWithConfig(rules domain.StatutoryRules, store cache.Store) *CalculationEngine {
	if store == nil {
		store = cache.NopStore{}
	}
	return &CalculationEngine{
		Rules:  rules,
		TTL:    DefaultCacheTTL,
		Logger: NopLogger{},
		Now:    time.Now,
		store:  store,
	}
}

// SetLogger sets the logger, nil restores the no-op logger
func (ce *CalculationEngine) SetLogger(logger Logger) {
	if logger == nil {
		logger = NopLogger{}
	}
	ce.Logger = logger
}

// Store returns the cache store
func (ce *CalculationEngine) Store() cache.Store {
	return ce.store
}

// ClearCache drops every cached calculation
func (ce *CalculationEngine) ClearCache(ctx context.Context) error {
	return ce.store.Clear(ctx)
}

// Calculate returns the payroll for one month. Invalid input is rejected before it is
// hashed and is never cached. A cache hit returns a copy with IsFromCache set.
func (ce *CalculationEngine) Calculate(ctx context.Context, in domain.CalculationInput) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ValidateInput(in, ce.Rules); err != nil {
		return nil, err
	}
	prepared, err := Prepare(in)
	if err != nil {
		return nil, err
	}
	key, err := cache.Key(prepared, ce.Rules)
	if err != nil {
		return nil, err
	}

	// the closure only runs on the caller that does the work; callers that joined it
	// receive a result they did not compute
	leader := false
	v, err, shared := ce.flight.Do(key, func() (interface{}, error) {
		leader = true
		return ce.lookupOrCompute(ctx, key, prepared)
	})
	if err != nil {
		return nil, err
	}
	res := v.(Result)
	res.Calculation = res.Calculation.Clone()
	if shared && !leader {
		res.IsFromCache = true
	}
	return &res, nil
}

func (ce *CalculationEngine) lookupOrCompute(ctx context.Context, key string, in domain.CalculationInput) (Result, error) {
	entry, ok, err := ce.store.Get(ctx, key)
	if err != nil {
		ce.Logger.Warnf("cache lookup failed for %s: %v", shortKey(key), err)
	}
	if ok {
		ce.Logger.Debugf("cache hit %s (%04d-%02d)", shortKey(key), in.Year, in.Month)
		return Result{Calculation: entry.Calculation, Hash: key, Timestamp: entry.StoredAt, IsFromCache: true}, nil
	}

	ce.Logger.Debugf("cache miss %s (%04d-%02d), calculating %d entries", shortKey(key), in.Year, in.Month, len(in.Entries))
	calc, err := calcPrepared(in, ce.Rules)
	if err != nil {
		return Result{}, err
	}
	now := ce.now()
	if err := ce.store.Set(ctx, key, cache.Entry{Calculation: calc.Clone(), StoredAt: now}, ce.TTL); err != nil {
		ce.Logger.Warnf("cache store failed for %s: %v", shortKey(key), err)
	}
	for _, w := range calc.Warnings {
		ce.Logger.Infof("%04d-%02d: %s", in.Year, in.Month, w)
	}
	return Result{Calculation: calc, Hash: key, Timestamp: now}, nil
}

// CalculateBatch calculates each input in order. A failing input never aborts the batch:
// it yields a zeroed result carrying the error message, which is not cached.
func (ce *CalculationEngine) CalculateBatch(ctx context.Context, inputs []domain.CalculationInput) []Result {
	results := make([]Result, 0, len(inputs))
	for i, in := range inputs {
		res, err := ce.Calculate(ctx, in)
		if err != nil {
			ce.Logger.Errorf("batch input %d failed: %v", i, err)
			results = append(results, Result{
				Calculation: domain.PayrollCalculation{Year: in.Year, Month: in.Month},
				Timestamp:   ce.now(),
				Error:       fmt.Sprintf("input %d: %v", i, err),
			})
			continue
		}
		results = append(results, *res)
	}
	return results
}

func (ce *CalculationEngine) now() time.Time {
	if ce.Now == nil {
		return time.Now()
	}
	return ce.Now()
}

func shortKey(key string) string {
	if len(key) > 12 {
		return key[:12]
	}
	return key
}
