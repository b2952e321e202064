package accrual

import (
	"time"

	"github.com/shopspring/decimal"
)

// daysPerYear is the simple-interest day-count convention.
const daysPerYear = 365

// Accrue computes simple (non-compounding) daily interest on an outstanding
// principal between the last accrual checkpoint and now.
//
// Interest is charged per whole elapsed day: if less than one full day has
// passed the delta is zero and the checkpoint is unchanged, which makes
// repeated calls within the same day idempotent. Otherwise the delta is
//
//	outstanding * aprPercent/100/365 * wholeDays
//
// rounded half-up to 2 decimal places, once per call, and the new checkpoint
// is now.
func Accrue(outstanding, aprPercent float64, last, now time.Time) (float64, time.Time) {
	wholeDays := int64(now.Sub(last) / (24 * time.Hour))
	if wholeDays <= 0 {
		return 0, last
	}
	delta := decimal.NewFromFloat(outstanding).
		Mul(decimal.NewFromFloat(aprPercent)).
		Mul(decimal.NewFromInt(wholeDays)).
		Div(decimal.NewFromInt(100 * daysPerYear)).
		Round(2)
	return delta.InexactFloat64(), now
}

// Add sums two monetary amounts without accumulating float noise.
func Add(a, b float64) float64 {
	return decimal.NewFromFloat(a).Add(decimal.NewFromFloat(b)).InexactFloat64()
}

// Sub subtracts b from a, floored at zero. Balance fields are never allowed
// to go negative.
func Sub(a, b float64) float64 {
	d := decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b))
	if d.IsNegative() {
		return 0
	}
	return d.InexactFloat64()
}

// Exceeds reports whether a+b would be strictly greater than limit, using
// exact decimal comparison.
func Exceeds(a, b, limit float64) bool {
	return decimal.NewFromFloat(a).Add(decimal.NewFromFloat(b)).
		GreaterThan(decimal.NewFromFloat(limit))
}
