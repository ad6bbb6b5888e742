package stockwatch

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Build aggregates a completed cycle into a Snapshot. It is a pure function
// of its inputs: rows sorted by symbol, events sorted by ex-date (stable, so
// ties keep arrival order), totals summed, and the aggregate day change
// computed only when the previous total is positive.
func Build(rows []SummaryRow, events []DividendEvent, trend []TrendPoint, currency string) Snapshot {
	sortedRows := make([]SummaryRow, len(rows))
	copy(sortedRows, rows)
	sort.Slice(sortedRows, func(i, j int) bool { return sortedRows[i].Symbol < sortedRows[j].Symbol })

	sortedEvents := make([]DividendEvent, len(events))
	copy(sortedEvents, events)
	sort.SliceStable(sortedEvents, func(i, j int) bool { return sortedEvents[i].ExDate.Before(sortedEvents[j].ExDate) })

	total := decimal.Zero
	previous := decimal.Zero
	for _, row := range sortedRows {
		total = total.Add(row.Value)
		previous = previous.Add(row.PreviousValue)
	}

	snapshot := Snapshot{
		Currency:           currency,
		Rows:               sortedRows,
		Dividends:          sortedEvents,
		TotalValue:         total,
		TotalPreviousValue: previous,
		Trend:              trend,
		At:                 time.Now(),
	}
	if previous.IsPositive() {
		change := Percent(total.Sub(previous).Div(previous).Mul(hundred).InexactFloat64())
		snapshot.DayChange = &change
	}
	return snapshot
}
