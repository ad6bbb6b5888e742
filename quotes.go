package stockwatch

import (
	"context"
	"log"
	"sync"

	"github.com/shopspring/decimal"
)

// ProgressFunc receives each completed summary row as quote workers finish,
// in completion order. done counts completed holdings (including skipped
// ones) out of total. It is called from the collecting goroutine only.
type ProgressFunc func(row SummaryRow, done, total int)

var hundred = decimal.NewFromInt(100)

// FetchRows fetches quotes for all holdings in parallel and values them in
// the display currency. One worker per holding; the shared rate cache keeps
// concurrent workers from racing duplicate FX lookups into the provider.
//
// A holding whose quote or conversion rate cannot be obtained is silently
// dropped from the cycle (logged only). The returned rows are in completion
// order; sorting is the aggregator's concern.
func FetchRows(ctx context.Context, provider MarketProvider, holdings []Holding, currency string, resolver *Resolver, progress ProgressFunc) []SummaryRow {
	type result struct {
		row SummaryRow
		ok  bool
	}

	results := make(chan result, len(holdings))
	var wg sync.WaitGroup
	for _, h := range holdings {
		wg.Add(1)
		go func(h Holding) {
			defer wg.Done()
			row, ok := fetchRow(ctx, provider, h, currency, resolver)
			results <- result{row, ok}
		}(h)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	rows := make([]SummaryRow, 0, len(holdings))
	done := 0
	for res := range results {
		done++
		if !res.ok {
			continue
		}
		rows = append(rows, res.row)
		if progress != nil {
			progress(res.row, done, len(holdings))
		}
	}
	return rows
}

// fetchRow values a single holding. ok is false when the instrument must be
// skipped this cycle.
func fetchRow(ctx context.Context, provider MarketProvider, h Holding, currency string, resolver *Resolver) (SummaryRow, bool) {
	quote, err := provider.Quote(ctx, h.Symbol)
	if err != nil {
		log.Printf("skipping %s: %v", h.Symbol, err)
		return SummaryRow{}, false
	}
	if !quote.LastPrice.IsPositive() {
		log.Printf("skipping %s: no price", h.Symbol)
		return SummaryRow{}, false
	}

	rate, err := resolver.Resolve(ctx, quote.Currency, currency)
	if err != nil {
		log.Printf("skipping %s: %v", h.Symbol, err)
		return SummaryRow{}, false
	}

	qty := decimal.NewFromInt(h.Quantity)
	value := quote.LastPrice.Mul(rate).Mul(qty)

	// An unknown previous close reads as zero day change, not as an error.
	previous := value
	change := Percent(0)
	if quote.PreviousClose.IsPositive() {
		previous = quote.PreviousClose.Mul(rate).Mul(qty)
		pct := quote.LastPrice.Sub(quote.PreviousClose).Div(quote.PreviousClose).Mul(hundred)
		change = Percent(pct.InexactFloat64())
	}

	return SummaryRow{
		Symbol:        h.Symbol,
		Quantity:      h.Quantity,
		Value:         value,
		PreviousValue: previous,
		DayChange:     change,
		Currency:      quote.Currency,
		rate:          rate,
		instrument:    quote.Instrument,
	}, true
}
