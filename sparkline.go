package stockwatch

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// sparks are the 8 vertical levels of the trend sparkline.
var sparks = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders a series as a fixed set of block glyphs, one per value.
// Each value maps to one of 8 levels by linear interpolation between the
// observed minimum and maximum; a constant series renders at full level.
func Sparkline(series []decimal.Decimal) string {
	if len(series) == 0 {
		return ""
	}

	min, max := series[0], series[0]
	for _, v := range series[1:] {
		if v.LessThan(min) {
			min = v
		}
		if v.GreaterThan(max) {
			max = v
		}
	}

	span := max.Sub(min).InexactFloat64()
	var b strings.Builder
	for _, v := range series {
		level := len(sparks) - 1
		if span > 0 {
			frac := v.Sub(min).InexactFloat64() / span
			level = int(math.Round(frac * float64(len(sparks)-1)))
		}
		b.WriteRune(sparks[level])
	}
	return b.String()
}

// TrendValues extracts the value series from trend points, in order.
func TrendValues(trend []TrendPoint) []decimal.Decimal {
	values := make([]decimal.Decimal, len(trend))
	for i, p := range trend {
		values[i] = p.Value
	}
	return values
}
