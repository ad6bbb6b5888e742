package stockwatch

import (
	"context"
	"log"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/etnz/stockwatch/date"
)

// FetchDividends looks up the next declared dividend for every row of the
// cycle, in parallel, reusing each row's provider handle and already-resolved
// conversion rate. Only dividends with an ex-date of today or later and a
// strictly positive amount become events; everything else, including fetch
// errors, yields nothing.
func FetchDividends(ctx context.Context, rows []SummaryRow, today date.Date) []DividendEvent {
	type result struct {
		event DividendEvent
		ok    bool
	}

	results := make(chan result, len(rows))
	var wg sync.WaitGroup
	for _, row := range rows {
		wg.Add(1)
		go func(row SummaryRow) {
			defer wg.Done()
			event, ok := fetchDividend(ctx, row, today)
			results <- result{event, ok}
		}(row)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var events []DividendEvent
	for res := range results {
		if res.ok {
			events = append(events, res.event)
		}
	}
	return events
}

func fetchDividend(ctx context.Context, row SummaryRow, today date.Date) (DividendEvent, bool) {
	if row.instrument == nil {
		return DividendEvent{}, false
	}
	next, err := row.instrument.NextDividend(ctx)
	if err != nil {
		log.Printf("no dividend data for %s: %v", row.Symbol, err)
		return DividendEvent{}, false
	}
	if next.ExDate.Before(today) || !next.Amount.IsPositive() {
		return DividendEvent{}, false
	}
	return DividendEvent{
		Symbol:   row.Symbol,
		ExDate:   next.ExDate,
		Amount:   next.Amount,
		Total:    next.Amount.Mul(row.rate).Mul(decimal.NewFromInt(row.Quantity)),
		Currency: row.Currency,
	}, true
}
