package stockwatch

import "fmt"

// Percent is a percentage value, e.g. Percent(2.5) is +2.50%.
type Percent float64

// Equal compares two percentages with a fixed precision.
func (p Percent) Equal(q Percent) bool {
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

// SignedString formats the percentage with an explicit sign.
func (p Percent) SignedString() string {
	return fmt.Sprintf("%+.2f%%", p)
}
