// Package yahoo fetches market data from the public Yahoo Finance endpoints:
// the chart API for quotes, FX rates and daily closes, and the quoteSummary
// API for the dividend calendar.
package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"

	"github.com/etnz/stockwatch"
	"github.com/etnz/stockwatch/date"
)

const defaultBase = "https://query1.finance.yahoo.com"

// Client is a Yahoo Finance market data client. The zero value is not
// usable; call New.
type Client struct {
	base   string
	live   *http.Client // fresh responses, for quotes and rates
	cached *http.Client // daily disk cache, for history and dividends
}

var _ stockwatch.MarketProvider = (*Client)(nil)

// New returns a ready to use client.
func New() *Client {
	return &Client{
		base:   defaultBase,
		live:   newLiveClient(),
		cached: newDailyCachingClient(),
	}
}

// chart API payload, trimmed to the fields we read.
type chartResult struct {
	Meta struct {
		Currency           string  `json:"currency"`
		RegularMarketPrice float64 `json:"regularMarketPrice"`
		ChartPreviousClose float64 `json:"chartPreviousClose"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Close []*float64 `json:"close"`
		} `json:"quote"`
	} `json:"indicators"`
}

type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// fetchChart queries the chart endpoint for one symbol.
func (c *Client) fetchChart(ctx context.Context, client *http.Client, symbol, rng string) (chartResult, error) {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=1d", c.base, url.PathEscape(symbol), rng)
	var payload chartResponse
	if err := jwget(ctx, client, addr, &payload); err != nil {
		return chartResult{}, err
	}
	if e := payload.Chart.Error; e != nil {
		return chartResult{}, fmt.Errorf("chart %s: %s (%s)", symbol, e.Description, e.Code)
	}
	if len(payload.Chart.Result) == 0 {
		return chartResult{}, fmt.Errorf("chart %s: empty result", symbol)
	}
	return payload.Chart.Result[0], nil
}

// Quote returns the latest price, previous close and native currency for a
// symbol, with a live handle for the dividend calendar.
func (c *Client) Quote(ctx context.Context, symbol string) (stockwatch.Quote, error) {
	result, err := c.fetchChart(ctx, c.live, symbol, "1d")
	if err != nil {
		return stockwatch.Quote{}, err
	}
	if result.Meta.RegularMarketPrice <= 0 {
		return stockwatch.Quote{}, fmt.Errorf("chart %s: no market price", symbol)
	}
	quote := stockwatch.Quote{
		Symbol:     symbol,
		LastPrice:  decimal.NewFromFloat(result.Meta.RegularMarketPrice),
		Currency:   strings.ToUpper(result.Meta.Currency),
		Instrument: &Ticker{client: c, symbol: symbol},
	}
	if result.Meta.ChartPreviousClose > 0 {
		quote.PreviousClose = decimal.NewFromFloat(result.Meta.ChartPreviousClose)
	}
	return quote, nil
}

// pairSymbol is the chart symbol quoting one unit of from in to, e.g.
// "EURSEK=X".
func pairSymbol(from, to string) string { return from + to + "=X" }

// PairRate returns the latest conversion factor for one unit of from
// expressed in to.
func (c *Client) PairRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	result, err := c.fetchChart(ctx, c.live, pairSymbol(from, to), "1d")
	if err != nil {
		return decimal.Zero, err
	}
	if result.Meta.RegularMarketPrice <= 0 {
		return decimal.Zero, fmt.Errorf("pair %s%s: no quoted rate", from, to)
	}
	return decimal.NewFromFloat(result.Meta.RegularMarketPrice), nil
}

// DailyCloses returns up to days trailing daily closes for a symbol, oldest
// first. Sessions without a close are skipped.
func (c *Client) DailyCloses(ctx context.Context, symbol string, days int) ([]stockwatch.Close, error) {
	result, err := c.fetchChart(ctx, c.cached, symbol, rangeFor(days))
	if err != nil {
		return nil, err
	}
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("chart %s: no close series", symbol)
	}
	closes := result.Indicators.Quote[0].Close

	var series []stockwatch.Close
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil || *closes[i] <= 0 {
			continue
		}
		series = append(series, stockwatch.Close{
			Day:   date.FromUnix(ts),
			Price: decimal.NewFromFloat(*closes[i]),
		})
	}
	if len(series) > days {
		series = series[len(series)-days:]
	}
	return series, nil
}

// PairCloses is DailyCloses for a currency pair.
func (c *Client) PairCloses(ctx context.Context, from, to string, days int) ([]stockwatch.Close, error) {
	return c.DailyCloses(ctx, pairSymbol(from, to), days)
}

// rangeFor maps a day count to the coarse range buckets the chart API
// accepts.
func rangeFor(days int) string {
	switch {
	case days <= 30:
		return "1mo"
	case days <= 90:
		return "3mo"
	default:
		return "1y"
	}
}

// Ticker is the live handle for one resolved symbol.
type Ticker struct {
	client *Client
	symbol string
}

var _ stockwatch.Instrument = (*Ticker)(nil)

// NextDividend returns the next declared dividend: the ex-date from the
// calendar and, preferably, the last realized dividend value, falling back
// to the declared annual dividend rate.
func (t *Ticker) NextDividend(ctx context.Context) (stockwatch.NextDividend, error) {
	addr := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=calendarEvents%%2CsummaryDetail",
		t.client.base, url.PathEscape(t.symbol))

	var jobj any
	if err := jwget(ctx, t.client.cached, addr, &jobj); err != nil {
		return stockwatch.NextDividend{}, fmt.Errorf("quoteSummary %s: %w", t.symbol, err)
	}

	exDate, err := jdate(jobj, "$.quoteSummary.result[0].calendarEvents.exDividendDate.fmt")
	if err != nil {
		return stockwatch.NextDividend{}, fmt.Errorf("quoteSummary %s: no ex-dividend date: %w", t.symbol, err)
	}

	amount, err := jfloat(jobj, "$.quoteSummary.result[0].summaryDetail.lastDividendValue.raw")
	if err != nil {
		amount, err = jfloat(jobj, "$.quoteSummary.result[0].summaryDetail.dividendRate.raw")
	}
	if err != nil {
		return stockwatch.NextDividend{}, fmt.Errorf("quoteSummary %s: no dividend amount: %w", t.symbol, err)
	}

	return stockwatch.NextDividend{
		ExDate: exDate,
		Amount: decimal.NewFromFloat(amount),
	}, nil
}

// jget evaluates a jsonpath expression, unwrapping the single-element list
// the library sometimes returns instead of a scalar.
func jget(jobj any, path string) (any, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, err
	}
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	return jval, nil
}

func jfloat(jobj any, path string) (float64, error) {
	jval, err := jget(jobj, path)
	if err != nil {
		return 0, err
	}
	val, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("%q is not a number: %v", path, jval)
	}
	return val, nil
}

func jdate(jobj any, path string) (date.Date, error) {
	jval, err := jget(jobj, path)
	if err != nil {
		return date.Date{}, err
	}
	str, ok := jval.(string)
	if !ok {
		return date.Date{}, fmt.Errorf("%q is not a string: %v", path, jval)
	}
	return date.Parse(str)
}
