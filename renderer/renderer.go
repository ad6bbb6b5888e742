// Package renderer turns portfolio snapshots into styled terminal output.
// It only consumes snapshot values; it never feeds back into the engine.
package renderer

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"

	"github.com/etnz/stockwatch"
)

// Styles.
var (
	positionsHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	dividendsHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	valueStyle           = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	gainStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	lossStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	totalGainStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	totalLossStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	payoutStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	panelStyle           = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("12")).Padding(0, 1)
	dimStyle             = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// changeStyle picks the gain or loss color for a percentage.
func changeStyle(p stockwatch.Percent) lipgloss.Style {
	if p < 0 {
		return lossStyle
	}
	return gainStyle
}

// Summary renders the whole snapshot: positions, upcoming dividends when any,
// the total panel, and the trend sparkline when available.
func Summary(s *stockwatch.Snapshot) string {
	var b strings.Builder
	b.WriteString(Positions(s))
	if len(s.Dividends) > 0 {
		b.WriteString("\n")
		b.WriteString(Dividends(s))
	}
	if panel := TotalPanel(s); panel != "" {
		b.WriteString("\n")
		b.WriteString(panel)
	}
	if line := TrendLine(s); line != "" {
		b.WriteString("\n")
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// Positions renders the holdings table, one row per valued holding.
func Positions(s *stockwatch.Snapshot) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return positionsHeaderStyle.PaddingLeft(1).PaddingRight(1)
			case col == 0:
				return lipgloss.NewStyle().Padding(0, 1)
			default:
				return lipgloss.NewStyle().Padding(0, 1).AlignHorizontal(lipgloss.Right)
			}
		}).
		Headers("Ticker", "Quantity", "Value ("+s.Currency+")", "Day %")

	for _, row := range s.Rows {
		t.Row(
			row.Symbol,
			groupInt(row.Quantity),
			valueStyle.Render(Money(row.Value, s.Currency)),
			changeStyle(row.DayChange).Render(row.DayChange.SignedString()),
		)
	}
	return t.Render() + "\n"
}

// Dividends renders the upcoming dividends table.
func Dividends(s *stockwatch.Snapshot) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return dividendsHeaderStyle.PaddingLeft(1).PaddingRight(1)
			case col == 0:
				return lipgloss.NewStyle().Padding(0, 1)
			default:
				return lipgloss.NewStyle().Padding(0, 1).AlignHorizontal(lipgloss.Right)
			}
		}).
		Headers("Ticker", "Ex-Date", "Amount", "Total ("+s.Currency+")")

	for _, ev := range s.Dividends {
		t.Row(
			ev.Symbol,
			ev.ExDate.String(),
			Amount(ev.Amount, ev.Currency),
			payoutStyle.Render(Money(ev.Total, s.Currency)),
		)
	}
	return t.Render() + "\n"
}

// TotalPanel renders the total value and aggregate day change in a framed
// panel. It is empty when the aggregate change is unknown: a baseline of zero
// would misread as a flat day.
func TotalPanel(s *stockwatch.Snapshot) string {
	if s.DayChange == nil {
		return ""
	}
	style := totalGainStyle
	if *s.DayChange < 0 {
		style = totalLossStyle
	}
	content := fmt.Sprintf("TOTAL VALUE:  %s\nDAY CHANGE:   %s",
		valueStyle.Render(Money(s.TotalValue, s.Currency)),
		style.Render(s.DayChange.SignedString()),
	)
	return panelStyle.Render(content) + "\n"
}

// TrendLine renders the 30-day sparkline, or nothing when no trend is
// available.
func TrendLine(s *stockwatch.Snapshot) string {
	if len(s.Trend) == 0 {
		return ""
	}
	return dimStyle.Render("30d trend ") + stockwatch.Sparkline(stockwatch.TrendValues(s.Trend))
}

// Status renders a dim status line, for the watch footer.
func Status(text string) string {
	return dimStyle.Render(text)
}

// Money formats a value in a currency's conventional presentation, e.g.
// "€1,234.56" or "1 234,56 kr".
func Money(v decimal.Decimal, code string) string {
	cur := money.New(0, code).Currency()
	minor := v.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return cur.Formatter().Format(minor)
}

// Amount formats a per-share amount with the currency's short label, e.g.
// "2.50 kr". Unlike Money it keeps the plain number readable next to the
// native currency of the instrument.
func Amount(v decimal.Decimal, code string) string {
	cur := money.New(0, code).Currency()
	return fmt.Sprintf("%s %s", v.StringFixed(2), cur.Grapheme)
}

// groupInt formats an integer with thousands separators.
func groupInt(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}
