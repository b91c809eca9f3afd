package synth

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Linear congruential step used to derive a stable fraction from an id.
const (
	lcgMultiplier = 9301
	lcgIncrement  = 49297
	lcgModulus    = 233280
)

// ParseSeed turns a record id into a seed. Non-numeric and zero ids map to 1;
// negative ids use their magnitude.
func ParseSeed(id string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil || n == 0 {
		return 1
	}
	if n < 0 {
		n = -n
	}
	return n
}

func lcgStep(seed int64) int64 {
	t := ((seed%lcgModulus)*lcgMultiplier + lcgIncrement) % lcgModulus
	if t < 0 {
		t += lcgModulus
	}
	return t
}

// SeedFraction returns a repeatable value in [0, 1) for seed.
func SeedFraction(seed int64) float64 {
	return float64(lcgStep(seed)) / lcgModulus
}

// Perturb moves base by up to half of spread in either direction, steered by
// seed, and rounds to two places. The same inputs always give the same result.
func Perturb(seed int64, base, spread decimal.Decimal) decimal.Decimal {
	frac := decimal.NewFromInt(lcgStep(seed)).Div(decimal.NewFromInt(lcgModulus))
	v := base.Add(frac.Sub(half).Mul(spread))
	return round2(v)
}
