package synth

import "github.com/shopspring/decimal"

var (
	half    = decimal.New(5, -1)
	hundred = decimal.NewFromInt(100)
)

// roundHalfUp rounds to a whole number with halves going toward +Inf, so
// -2.5 becomes -2 and 2.5 becomes 3.
func roundHalfUp(d decimal.Decimal) decimal.Decimal {
	return d.Add(half).Floor()
}

// round2 rounds to pennies with the same tie rule as roundHalfUp.
func round2(d decimal.Decimal) decimal.Decimal {
	return roundHalfUp(d.Mul(hundred)).Div(hundred)
}

func maxZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func pct(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
