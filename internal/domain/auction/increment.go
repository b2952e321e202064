package auction

import "github.com/shopspring/decimal"

// IncrementPolicy computes the minimum acceptable next bid for an auction
// given its start price and the current highest accepted bid (zero when no
// bid has been accepted yet). Two formulas exist in the field; which one a
// deployment uses is configuration, so the rule is injected rather than
// hard-coded.
type IncrementPolicy func(startPrice, currentHighest float64) float64

// PercentIncrement returns a policy where the minimum next bid is the
// current base (highest bid, or start price before any bid) plus pct percent
// of that base, rounded to 2 decimal places.
func PercentIncrement(pct float64) IncrementPolicy {
	p := decimal.NewFromFloat(pct)
	return func(startPrice, currentHighest float64) float64 {
		base := decimal.NewFromFloat(startPrice)
		if h := decimal.NewFromFloat(currentHighest); h.GreaterThan(base) {
			base = h
		}
		return base.Add(base.Mul(p).Div(decimal.NewFromInt(100)).Round(2)).
			InexactFloat64()
	}
}

// Tier is one band of a fixed-increment table: bids with a base strictly
// below UpTo must step by at least Step.
type Tier struct {
	UpTo float64
	Step float64
}

// TieredIncrement returns a policy backed by a fixed-increment table. Tiers
// must be sorted by UpTo ascending; a base beyond the last tier uses the last
// tier's step.
func TieredIncrement(tiers []Tier) IncrementPolicy {
	return func(startPrice, currentHighest float64) float64 {
		base := startPrice
		if currentHighest > base {
			base = currentHighest
		}
		step := 0.0
		for _, t := range tiers {
			step = t.Step
			if base < t.UpTo {
				break
			}
		}
		return decimal.NewFromFloat(base).
			Add(decimal.NewFromFloat(step)).InexactFloat64()
	}
}

// DefaultTiers is the fixed-increment table observed in shop practice.
var DefaultTiers = []Tier{
	{UpTo: 100, Step: 5},
	{UpTo: 1_000, Step: 25},
	{UpTo: 10_000, Step: 100},
	{UpTo: 100_000, Step: 250},
}
