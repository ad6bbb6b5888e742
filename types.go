package stockwatch

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/etnz/stockwatch/date"
)

// Holding is a position in the portfolio: a ticker symbol and the number of
// shares held.
type Holding struct {
	Symbol   string
	Quantity int64
}

// Quote is the latest market data for a single instrument, as returned by a
// provider. A zero PreviousClose means the previous close is unknown.
type Quote struct {
	Symbol        string
	LastPrice     decimal.Decimal
	PreviousClose decimal.Decimal
	Currency      string // native currency, 3-letter code

	// Instrument is the provider handle for follow-up lookups on the same
	// symbol (dividend calendar). May be nil for providers without one.
	Instrument Instrument
}

// SummaryRow is one line of the portfolio summary: a holding valued in the
// display currency.
type SummaryRow struct {
	Symbol        string
	Quantity      int64
	Value         decimal.Decimal // in the display currency
	PreviousValue decimal.Decimal
	DayChange     Percent
	Currency      string // native currency of the instrument

	// rate is the native→display conversion factor resolved for this cycle,
	// reused by the dividend fetch so a pair is never resolved twice.
	rate       decimal.Decimal
	instrument Instrument
}

// DividendEvent is an upcoming dividend for a held instrument.
type DividendEvent struct {
	Symbol   string
	ExDate   date.Date
	Amount   decimal.Decimal // per share, in the native currency
	Total    decimal.Decimal // for the whole position, in the display currency
	Currency string          // native currency, 3-letter code
}

// NextDividend is the next declared dividend of an instrument, as reported by
// a provider.
type NextDividend struct {
	ExDate date.Date
	Amount decimal.Decimal // per share, native currency
}

// TrendPoint is one day of the converted portfolio-value series.
type TrendPoint struct {
	Day   date.Date
	Value decimal.Decimal
}

// Snapshot is the immutable result of one completed refresh cycle. It is
// superseded, never mutated, by the next cycle.
type Snapshot struct {
	Currency  string
	Rows      []SummaryRow    // sorted by symbol ascending
	Dividends []DividendEvent // sorted by ex-date ascending

	TotalValue         decimal.Decimal
	TotalPreviousValue decimal.Decimal
	// DayChange is nil when TotalPreviousValue is not positive: an unknown
	// baseline is not the same thing as zero movement.
	DayChange *Percent

	Trend []TrendPoint // oldest to newest, empty when unavailable
	At    time.Time
}
