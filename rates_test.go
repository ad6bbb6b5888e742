package stockwatch

import (
	"context"
	"testing"
)

func TestResolveIdentity(t *testing.T) {
	provider := newFakeProvider()
	cache := NewRateCache()
	resolver := NewResolver(provider, cache)

	rate, err := resolver.Resolve(context.Background(), "EUR", "EUR")
	if err != nil {
		t.Fatalf("Resolve() unexpected error = %v", err)
	}
	if !rate.Equal(d("1")) {
		t.Errorf("Resolve(EUR, EUR) = %v, want 1", rate)
	}
	if got := provider.rateCallCount("EUREUR"); got != 0 {
		t.Errorf("identity pair hit the provider %d times, want 0", got)
	}
	if cache.Len() != 0 {
		t.Errorf("identity pair wrote %d cache entries, want 0", cache.Len())
	}
}

func TestResolveCachesDirectPair(t *testing.T) {
	provider := newFakeProvider()
	provider.rates["SEKEUR"] = d("0.088")
	resolver := NewResolver(provider, NewRateCache())

	first, err := resolver.Resolve(context.Background(), "SEK", "EUR")
	if err != nil {
		t.Fatalf("Resolve() unexpected error = %v", err)
	}
	second, err := resolver.Resolve(context.Background(), "SEK", "EUR")
	if err != nil {
		t.Fatalf("Resolve() unexpected error = %v", err)
	}
	if !first.Equal(second) {
		t.Errorf("cached rate %v differs from first resolution %v", second, first)
	}
	if got := provider.rateCallCount("SEKEUR"); got != 1 {
		t.Errorf("direct pair fetched %d times, want 1 (second call must be cached)", got)
	}
}

func TestResolveInverseFallback(t *testing.T) {
	provider := newFakeProvider()
	// EUR→SEK is not quoted, only SEK→EUR at 4.
	provider.rates["SEKEUR"] = d("4")
	resolver := NewResolver(provider, NewRateCache())

	rate, err := resolver.Resolve(context.Background(), "EUR", "SEK")
	if err != nil {
		t.Fatalf("Resolve() unexpected error = %v", err)
	}
	if !rate.Equal(d("0.25")) {
		t.Errorf("Resolve(EUR, SEK) = %v, want 0.25 (reciprocal of inverse)", rate)
	}

	// The reciprocal must be cached under the forward key: no further lookups.
	if _, err := resolver.Resolve(context.Background(), "EUR", "SEK"); err != nil {
		t.Fatalf("Resolve() unexpected error = %v", err)
	}
	if got := provider.rateCallCount("EURSEK"); got != 1 {
		t.Errorf("direct pair probed %d times, want 1", got)
	}
	if got := provider.rateCallCount("SEKEUR"); got != 1 {
		t.Errorf("inverse pair fetched %d times, want 1", got)
	}
}

func TestResolveFailure(t *testing.T) {
	provider := newFakeProvider()
	resolver := NewResolver(provider, NewRateCache())

	if _, err := resolver.Resolve(context.Background(), "EUR", "SEK"); err == nil {
		t.Error("Resolve() with no quoted pair should fail")
	}
}

func TestResolveRejectsZeroRate(t *testing.T) {
	provider := newFakeProvider()
	provider.rates["EURSEK"] = d("0")
	provider.rates["SEKEUR"] = d("4")
	resolver := NewResolver(provider, NewRateCache())

	rate, err := resolver.Resolve(context.Background(), "EUR", "SEK")
	if err != nil {
		t.Fatalf("Resolve() unexpected error = %v", err)
	}
	if !rate.Equal(d("0.25")) {
		t.Errorf("Resolve() = %v, want inverse fallback 0.25 when direct rate is zero", rate)
	}
}

func TestValidateCurrency(t *testing.T) {
	testCases := []struct {
		name      string
		code      string
		rates     map[string]string
		wantErr   bool
		wantCalls int
	}{
		{"USD needs no lookup", "USD", nil, false, 0},
		{"two letters", "US", nil, true, 0},
		{"four letters", "EURO", nil, true, 0},
		{"lowercase", "usd", nil, true, 0},
		{"digits", "E1R", nil, true, 0},
		{"known code", "EUR", map[string]string{"USDEUR": "0.9"}, false, 1},
		{"unknown code", "XQZ", nil, true, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			provider := newFakeProvider()
			for pair, rate := range tc.rates {
				provider.rates[pair] = d(rate)
			}
			resolver := NewResolver(provider, NewRateCache())

			err := resolver.ValidateCurrency(context.Background(), tc.code)
			if (err != nil) != tc.wantErr {
				t.Errorf("ValidateCurrency(%q) error = %v, wantErr %v", tc.code, err, tc.wantErr)
			}
			if got := provider.rateCallCount("USD" + tc.code); got != tc.wantCalls {
				t.Errorf("ValidateCurrency(%q) made %d lookups, want %d", tc.code, got, tc.wantCalls)
			}
		})
	}
}
