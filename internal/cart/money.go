package cart

import "math"

// Cents is an integer number of minor currency units. All price arithmetic
// happens in cents to avoid floating point drift.
type Cents = int64

// ClampToCents rounds a value to the nearest whole cent and floors the
// result at zero. Every calculation that can underflow (discounts,
// promotions) or produce fractional cents (percentage math) goes through
// this before the result is stored.
func ClampToCents(v float64) Cents {
	r := math.Round(v)
	if r < 0 {
		return 0
	}
	return Cents(r)
}
