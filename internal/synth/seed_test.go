package synth

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseSeed(t *testing.T) {
	tests := []struct {
		id   string
		want int64
	}{
		{"7", 7},
		{" 12 ", 12},
		{"0", 1},
		{"", 1},
		{"abc", 1},
		{"-4", 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseSeed(tt.id), "ParseSeed(%q)", tt.id)
	}
}

func TestSeedFraction(t *testing.T) {
	assert.InDelta(t, 58598.0/233280.0, SeedFraction(1), 1e-12)
	assert.InDelta(t, 49297.0/233280.0, SeedFraction(0), 1e-12)
	for seed := int64(-50); seed < 5000; seed++ {
		f := SeedFraction(seed)
		assert.GreaterOrEqual(t, f, 0.0)
		assert.Less(t, f, 1.0)
	}
}

func TestSeedFraction_LargeSeeds(t *testing.T) {
	for _, seed := range []int64{1_000_000_000_000_001, math.MaxInt64, math.MinInt64 + 1, 991_670_000_000_000_000} {
		f := SeedFraction(seed)
		assert.GreaterOrEqual(t, f, 0.0, "seed %d", seed)
		assert.Less(t, f, 1.0, "seed %d", seed)
		assert.Equal(t, SeedFraction(seed%lcgModulus), f, "seed %d", seed)
	}
}

func TestPerturb(t *testing.T) {
	base := decimal.NewFromInt(100)
	spread := decimal.NewFromInt(10)
	tests := []struct {
		seed int64
		want string
	}{
		{1, "97.51"},
		{2, "97.91"},
		{7, "99.9"},
		{1234, "99.12"},
	}
	for _, tt := range tests {
		got := Perturb(tt.seed, base, spread)
		assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "seed %d: got %s", tt.seed, got)
	}
}

func TestPerturb_Deterministic(t *testing.T) {
	base := decimal.RequireFromString("2500.75")
	spread := decimal.NewFromInt(400)
	for seed := int64(0); seed < 200; seed++ {
		a := Perturb(seed, base, spread)
		b := Perturb(seed, base, spread)
		assert.Equal(t, a.String(), b.String())
		lo := base.Sub(spread.Div(decimal.NewFromInt(2)))
		hi := base.Add(spread.Div(decimal.NewFromInt(2)))
		assert.True(t, a.GreaterThanOrEqual(lo) && a.LessThanOrEqual(hi), "seed %d out of range: %s", seed, a)
	}
}

func TestPerturb_DifferentSeedsDiffer(t *testing.T) {
	base := decimal.NewFromInt(1000)
	spread := decimal.NewFromInt(200)
	seen := make(map[string]bool)
	for seed := int64(1); seed <= 20; seed++ {
		seen[Perturb(seed, base, spread).String()] = true
	}
	assert.Greater(t, len(seen), 15, "seeds should spread across distinct values")
}
