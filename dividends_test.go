package stockwatch

import (
	"context"
	"errors"
	"testing"

	"github.com/etnz/stockwatch/date"
)

func divRow(symbol string, qty int64, rate string, instrument Instrument) SummaryRow {
	return SummaryRow{
		Symbol:     symbol,
		Quantity:   qty,
		Currency:   "SEK",
		rate:       d(rate),
		instrument: instrument,
	}
}

func TestFetchDividendsFiltersByExDate(t *testing.T) {
	today := day("2026-08-31")
	testCases := []struct {
		name   string
		exDate date.Date
		want   bool
	}{
		{"yesterday excluded", today.Add(-1), false},
		{"today included", today, true},
		{"future included", today.Add(14), true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			instrument := &fakeInstrument{next: NextDividend{ExDate: tc.exDate, Amount: d("2.5")}}
			events := FetchDividends(context.Background(), []SummaryRow{divRow("AAA", 10, "0.1", instrument)}, today)
			if got := len(events) == 1; got != tc.want {
				t.Errorf("event emitted = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFetchDividendsComputesTotalFromCycleRate(t *testing.T) {
	today := day("2026-08-31")
	instrument := &fakeInstrument{next: NextDividend{ExDate: today.Add(7), Amount: d("2.5")}}
	events := FetchDividends(context.Background(), []SummaryRow{divRow("AAA", 10, "0.1", instrument)}, today)
	if len(events) != 1 {
		t.Fatalf("FetchDividends() returned %d events, want 1", len(events))
	}
	ev := events[0]
	// 2.5 SEK × 0.1 × 10 shares.
	if !ev.Total.Equal(d("2.5")) {
		t.Errorf("total = %v, want 2.5", ev.Total)
	}
	if !ev.Amount.Equal(d("2.5")) {
		t.Errorf("amount = %v, want 2.5 (per share, native currency)", ev.Amount)
	}
	if ev.Currency != "SEK" {
		t.Errorf("currency = %q, want SEK", ev.Currency)
	}
}

func TestFetchDividendsSkipsQuietly(t *testing.T) {
	today := day("2026-08-31")
	rows := []SummaryRow{
		divRow("ERR", 1, "1", &fakeInstrument{err: errors.New("rate limited")}),
		divRow("ZRO", 1, "1", &fakeInstrument{next: NextDividend{ExDate: today, Amount: d("0")}}),
		divRow("NIL", 1, "1", nil),
		divRow("OK", 1, "1", &fakeInstrument{next: NextDividend{ExDate: today, Amount: d("1")}}),
	}
	events := FetchDividends(context.Background(), rows, today)
	if len(events) != 1 || events[0].Symbol != "OK" {
		t.Fatalf("FetchDividends() = %v, want only OK", events)
	}
}
