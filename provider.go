package stockwatch

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/etnz/stockwatch/date"
)

// MarketProvider supplies live quotes, FX rates and historical closes.
//
// Providers are treated as unreliable: any call may fail or return partial
// data, and callers degrade gracefully instead of propagating the error.
type MarketProvider interface {
	// Quote returns the latest price, previous close and native currency for
	// a symbol. An error means the instrument is unavailable this cycle.
	Quote(ctx context.Context, symbol string) (Quote, error)

	// PairRate returns the latest conversion factor for one unit of from
	// expressed in to. An error or a non-positive rate means the pair could
	// not be resolved.
	PairRate(ctx context.Context, from, to string) (decimal.Decimal, error)

	// DailyCloses returns up to days trailing daily closing prices for a
	// symbol, oldest first.
	DailyCloses(ctx context.Context, symbol string, days int) ([]Close, error)

	// PairCloses is DailyCloses for a currency pair.
	PairCloses(ctx context.Context, from, to string, days int) ([]Close, error)
}

// Instrument is a live provider handle for one resolved symbol, reused for
// follow-up lookups without resolving the instrument again.
type Instrument interface {
	// NextDividend returns the next declared dividend. An error means no
	// usable dividend data is available.
	NextDividend(ctx context.Context) (NextDividend, error)
}

// Close is a single day's closing price.
type Close struct {
	Day   date.Date
	Price decimal.Decimal
}
