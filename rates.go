package stockwatch

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// RateSource resolves a single FX pair from the market. MarketProvider
// satisfies it; tests substitute counting fakes.
type RateSource interface {
	PairRate(ctx context.Context, from, to string) (decimal.Decimal, error)
}

// RateCache memoizes resolved conversion rates for the duration of one
// refresh cycle. It is safe for use by concurrent quote workers; the worst
// case under contention is a harmless duplicate lookup.
type RateCache struct {
	mu    sync.Mutex
	rates map[string]decimal.Decimal
}

// NewRateCache returns an empty cache. One is created per cycle and never
// reused, so rates are allowed to drift between cycles.
func NewRateCache() *RateCache {
	return &RateCache{rates: make(map[string]decimal.Decimal)}
}

func (c *RateCache) get(key string) (decimal.Decimal, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rate, ok := c.rates[key]
	return rate, ok
}

func (c *RateCache) put(key string, rate decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rates[key] = rate
}

// Len returns the number of cached pairs.
func (c *RateCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.rates)
}

// Resolver resolves conversion factors between currencies, memoizing results
// in a per-cycle cache and falling back to the inverse pair when the direct
// pair is not quoted.
type Resolver struct {
	source RateSource
	cache  *RateCache
}

// NewResolver returns a resolver backed by the given source and cache.
func NewResolver(source RateSource, cache *RateCache) *Resolver {
	return &Resolver{source: source, cache: cache}
}

var one = decimal.NewFromInt(1)

// Resolve returns the conversion factor from one currency to another.
//
// Identity pairs resolve to exactly 1 without a lookup or a cache write.
// Otherwise the cache is consulted, then the direct pair, then the inverse
// pair (cached as its reciprocal under the forward key). Failure to resolve a
// pair means prices in that currency are unavailable this cycle; it is never
// fatal to the run.
func (r *Resolver) Resolve(ctx context.Context, from, to string) (decimal.Decimal, error) {
	if from == to {
		return one, nil
	}

	key := from + to
	if rate, ok := r.cache.get(key); ok {
		return rate, nil
	}

	rate, err := r.source.PairRate(ctx, from, to)
	if err == nil && rate.IsPositive() {
		r.cache.put(key, rate)
		return rate, nil
	}

	inverse, ierr := r.source.PairRate(ctx, to, from)
	if ierr == nil && inverse.IsPositive() {
		rate = one.Div(inverse)
		r.cache.put(key, rate)
		return rate, nil
	}

	if err == nil {
		err = ierr
	}
	return decimal.Zero, fmt.Errorf("no conversion rate for %s/%s: %w", from, to, err)
}

// ValidateCurrency reports whether code can be used as the display currency.
// A code is valid if it is exactly 3 letters and either is USD or the USD→code
// pair resolves. This single check gates the whole run; it is the only fatal
// validation in the program.
func (r *Resolver) ValidateCurrency(ctx context.Context, code string) error {
	if len(code) != 3 {
		return fmt.Errorf("invalid currency code %q: want 3 letters", code)
	}
	for _, c := range code {
		if c < 'A' || c > 'Z' {
			return fmt.Errorf("invalid currency code %q: want 3 uppercase letters", code)
		}
	}
	if code == "USD" {
		return nil
	}
	rate, err := r.source.PairRate(ctx, "USD", code)
	if err != nil {
		return fmt.Errorf("unknown currency %q: %w", code, err)
	}
	if !rate.IsPositive() {
		return fmt.Errorf("unknown currency %q: no quoted rate", code)
	}
	return nil
}
