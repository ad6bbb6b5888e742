package stockwatch

import (
	"testing"

	"github.com/shopspring/decimal"
)

func series(values ...string) []decimal.Decimal {
	s := make([]decimal.Decimal, len(values))
	for i, v := range values {
		s[i] = d(v)
	}
	return s
}

func TestSparkline(t *testing.T) {
	testCases := []struct {
		name   string
		series []decimal.Decimal
		want   string
	}{
		{"empty", nil, ""},
		{"single value renders full", series("42"), "█"},
		{"constant series renders full", series("10", "10", "10"), "███"},
		{"extremes map to first and last glyph", series("0", "7"), "▁█"},
		{"midpoint rounds to nearest level", series("0", "3.5", "7"), "▁▅█"},
		{"full ramp", series("0", "1", "2", "3", "4", "5", "6", "7"), "▁▂▃▄▅▆▇█"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Sparkline(tc.series); got != tc.want {
				t.Errorf("Sparkline() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSparklineMonotonicSeriesNeverDips(t *testing.T) {
	got := []rune(Sparkline(series("1", "2", "2", "5", "9", "20")))
	level := func(r rune) int {
		for i, s := range sparks {
			if s == r {
				return i
			}
		}
		t.Fatalf("unknown glyph %q", r)
		return -1
	}
	for i := 1; i < len(got); i++ {
		if level(got[i]) < level(got[i-1]) {
			t.Errorf("level dipped at %d in %q", i, string(got))
		}
	}
}

func TestTrendValues(t *testing.T) {
	trend := []TrendPoint{
		{Day: day("2026-08-01"), Value: d("10")},
		{Day: day("2026-08-02"), Value: d("12")},
	}
	values := TrendValues(trend)
	if len(values) != 2 || !values[0].Equal(d("10")) || !values[1].Equal(d("12")) {
		t.Errorf("TrendValues() = %v", values)
	}
}
