package stockwatch

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/etnz/stockwatch/date"
)

// d parses a decimal literal for tests.
func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// fakeProvider is an in-memory MarketProvider with per-call counters.
type fakeProvider struct {
	mu sync.Mutex

	quotes    map[string]Quote
	quoteErrs map[string]error
	rates     map[string]decimal.Decimal // key "FROMTO"
	closes    map[string][]Close         // symbol or "FROMTO" for pairs
	closesErr error

	quoteCalls  map[string]int
	rateCalls   map[string]int
	closesCalls map[string]int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		quotes:      make(map[string]Quote),
		quoteErrs:   make(map[string]error),
		rates:       make(map[string]decimal.Decimal),
		closes:      make(map[string][]Close),
		quoteCalls:  make(map[string]int),
		rateCalls:   make(map[string]int),
		closesCalls: make(map[string]int),
	}
}

func (p *fakeProvider) Quote(_ context.Context, symbol string) (Quote, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.quoteCalls[symbol]++
	if err, ok := p.quoteErrs[symbol]; ok {
		return Quote{}, err
	}
	q, ok := p.quotes[symbol]
	if !ok {
		return Quote{}, fmt.Errorf("unknown symbol %q", symbol)
	}
	return q, nil
}

func (p *fakeProvider) PairRate(_ context.Context, from, to string) (decimal.Decimal, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rateCalls[from+to]++
	rate, ok := p.rates[from+to]
	if !ok {
		return decimal.Zero, fmt.Errorf("pair %s%s not quoted", from, to)
	}
	return rate, nil
}

func (p *fakeProvider) DailyCloses(_ context.Context, symbol string, _ int) ([]Close, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closesCalls[symbol]++
	if p.closesErr != nil {
		return nil, p.closesErr
	}
	series, ok := p.closes[symbol]
	if !ok {
		return nil, fmt.Errorf("no history for %q", symbol)
	}
	return series, nil
}

func (p *fakeProvider) PairCloses(ctx context.Context, from, to string, days int) ([]Close, error) {
	return p.DailyCloses(ctx, from+to, days)
}

func (p *fakeProvider) rateCallCount(pair string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rateCalls[pair]
}

func (p *fakeProvider) closesCallCount(symbol string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closesCalls[symbol]
}

// fakeInstrument returns a fixed next dividend, or an error.
type fakeInstrument struct {
	next NextDividend
	err  error
}

func (i *fakeInstrument) NextDividend(context.Context) (NextDividend, error) {
	if i.err != nil {
		return NextDividend{}, i.err
	}
	return i.next, nil
}

// day is a shorthand date constructor for tests.
func day(s string) date.Date { return date.MustParse(s) }
