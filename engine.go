package stockwatch

import (
	"context"
	"time"

	"github.com/etnz/stockwatch/date"
)

// HistoryEvery is the minimum delay between two recomputations of the trend
// series in a long-running watch session. The history fetch is the most
// expensive call of a cycle; the first cycle always computes it.
const HistoryEvery = 120 * time.Second

// Engine runs refresh cycles against a market provider. It is driven by a
// single orchestrating goroutine; only the worker fan-out inside a cycle is
// concurrent.
type Engine struct {
	provider MarketProvider
	holdings []Holding
	currency string

	// trend is carried across cycles between recomputations. Each cycle's
	// quote, rate and dividend data is otherwise owned by that cycle alone.
	trend        []TrendPoint
	trendFetched time.Time
	historyEvery time.Duration
}

// NewEngine returns an engine valuing the given holdings in the display
// currency.
func NewEngine(provider MarketProvider, holdings []Holding, currency string) *Engine {
	return &Engine{
		provider:     provider,
		holdings:     holdings,
		currency:     currency,
		historyEvery: HistoryEvery,
	}
}

// Currency returns the display currency.
func (e *Engine) Currency() string { return e.currency }

// ValidateCurrency checks the display currency against the provider, once,
// before any cycle runs. This is the only fatal validation of the program.
func (e *Engine) ValidateCurrency(ctx context.Context) error {
	resolver := NewResolver(e.provider, NewRateCache())
	return resolver.ValidateCurrency(ctx, e.currency)
}

// RunCycle performs one complete fetch-and-aggregate pass: quotes in
// parallel under a fresh rate cache, then dividends over the completed quote
// set, then (cadence permitting) the trend series, and finally aggregation.
// progress, when non-nil, observes each completed quote for incremental
// display; the returned snapshot is always built from the full result set.
func (e *Engine) RunCycle(ctx context.Context, progress ProgressFunc) Snapshot {
	cache := NewRateCache()
	resolver := NewResolver(e.provider, cache)

	rows := FetchRows(ctx, e.provider, e.holdings, e.currency, resolver, progress)
	events := FetchDividends(ctx, rows, date.Today())

	if e.trendFetched.IsZero() || time.Since(e.trendFetched) >= e.historyEvery {
		native := make(map[string]string, len(rows))
		for _, row := range rows {
			native[row.Symbol] = row.Currency
		}
		if trend := FetchTrend(ctx, e.provider, e.holdings, e.currency, native, TrendDays); trend != nil {
			e.trend = trend
		}
		e.trendFetched = time.Now()
	}

	return Build(rows, events, e.trend, e.currency)
}
