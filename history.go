package stockwatch

import (
	"context"
	"log"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/etnz/stockwatch/date"
)

// TrendDays is the length of the trailing portfolio-value series.
const TrendDays = 30

// FetchTrend computes the trailing daily portfolio-value series in the
// display currency: for each trading session, the sum over all holdings of
// that day's close times quantity times that day's conversion rate.
//
// native maps each symbol to its native currency, as learned from the cycle's
// quotes; symbols without an entry are left out of the series. Closes are
// requested once per symbol and once per distinct currency pair. Any fetch
// error yields an empty series: the trend is decorative, never fatal.
func FetchTrend(ctx context.Context, provider MarketProvider, holdings []Holding, currency string, native map[string]string, days int) []TrendPoint {
	closes := make(map[string]map[date.Date]decimal.Decimal)
	for _, h := range holdings {
		if _, ok := native[h.Symbol]; !ok {
			continue
		}
		series, err := provider.DailyCloses(ctx, h.Symbol, days)
		if err != nil {
			log.Printf("no history for %s: %v", h.Symbol, err)
			return nil
		}
		byDay := make(map[date.Date]decimal.Decimal, len(series))
		for _, c := range series {
			byDay[c.Day] = c.Price
		}
		closes[h.Symbol] = byDay
	}

	rates, err := fetchPairCloses(ctx, provider, currency, native, days)
	if err != nil {
		return nil
	}

	// Union of all session days, oldest first.
	seen := make(map[date.Date]bool)
	var sessions []date.Date
	for _, byDay := range closes {
		for day := range byDay {
			if !seen[day] {
				seen[day] = true
				sessions = append(sessions, day)
			}
		}
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].Before(sessions[j]) })
	if len(sessions) > days {
		sessions = sessions[len(sessions)-days:]
	}

	var trend []TrendPoint
	for _, day := range sessions {
		total := decimal.Zero
		any := false
		for _, h := range holdings {
			price, ok := closes[h.Symbol][day]
			if !ok {
				continue
			}
			rate, ok := rateOn(rates, native[h.Symbol]+currency, day)
			if !ok {
				continue
			}
			total = total.Add(price.Mul(rate).Mul(decimal.NewFromInt(h.Quantity)))
			any = true
		}
		if any {
			trend = append(trend, TrendPoint{Day: day, Value: total})
		}
	}
	return trend
}

// fetchPairCloses fetches the daily rate series for every distinct
// native→display pair actually needed. Identity pairs need no lookup.
func fetchPairCloses(ctx context.Context, provider MarketProvider, currency string, native map[string]string, days int) (map[string]map[date.Date]decimal.Decimal, error) {
	rates := make(map[string]map[date.Date]decimal.Decimal)
	for _, from := range native {
		if from == currency {
			continue
		}
		key := from + currency
		if _, ok := rates[key]; ok {
			continue
		}
		series, err := provider.PairCloses(ctx, from, currency, days)
		if err != nil {
			log.Printf("no rate history for %s: %v", key, err)
			return nil, err
		}
		byDay := make(map[date.Date]decimal.Decimal, len(series))
		for _, c := range series {
			byDay[c.Day] = c.Price
		}
		rates[key] = byDay
	}
	return rates, nil
}

// rateOn returns the conversion rate for a pair on a given day. Identity
// pairs (absent from the map because they were never fetched) are 1. FX
// sessions do not line up exactly with equity sessions, so the most recent
// rate within the previous few days is accepted.
func rateOn(rates map[string]map[date.Date]decimal.Decimal, key string, day date.Date) (decimal.Decimal, bool) {
	byDay, ok := rates[key]
	if !ok {
		return one, true
	}
	for back := 0; back <= 5; back++ {
		if rate, found := byDay[day.Add(-back)]; found && rate.IsPositive() {
			return rate, true
		}
	}
	return decimal.Zero, false
}
