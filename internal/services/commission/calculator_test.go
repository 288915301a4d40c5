package commission

import (
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rate(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newDefaultCalculator(t *testing.T) *Calculator {
	t.Helper()
	calc, err := NewCalculator(DefaultTiers())
	require.NoError(t, err)
	return calc
}

func TestCalculator_CalculateFee(t *testing.T) {
	calc := newDefaultCalculator(t)

	tests := []struct {
		name          string
		amount        int64
		monthlyVolume int64
		wantTier      string
		wantRate      string
		wantFee       int64
		wantNet       int64
	}{
		{
			name:          "starter tier",
			amount:        10000,
			monthlyVolume: 50000,
			wantTier:      "Starter",
			wantRate:      "0.30",
			wantFee:       3000,
			wantNet:       7000,
		},
		{
			name:          "growing tier",
			amount:        10000,
			monthlyVolume: 300000,
			wantTier:      "Growing",
			wantRate:      "0.25",
			wantFee:       2500,
			wantNet:       7500,
		},
		{
			name:          "enterprise tier",
			amount:        10000,
			monthlyVolume: 6000000,
			wantTier:      "Enterprise",
			wantRate:      "0.10",
			wantFee:       1000,
			wantNet:       9000,
		},
		{
			name:          "raw fee below floor",
			amount:        200,
			monthlyVolume: 50000,
			wantTier:      "Starter",
			wantRate:      "0.30",
			wantFee:       100,
			wantNet:       100,
		},
		{
			name:          "amount below floor gives negative net",
			amount:        50,
			monthlyVolume: 10000000,
			wantTier:      "Enterprise",
			wantRate:      "0.10",
			wantFee:       100,
			wantNet:       -50,
		},
		{
			name:          "zero amount",
			amount:        0,
			monthlyVolume: 0,
			wantTier:      "Starter",
			wantRate:      "0.30",
			wantFee:       100,
			wantNet:       -100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := calc.CalculateFee(tt.amount, tt.monthlyVolume)
			require.NoError(t, err)

			assert.Equal(t, tt.wantTier, res.TierName)
			assert.True(t, rate(tt.wantRate).Equal(res.FeePercentage), "rate %s", res.FeePercentage)
			assert.Equal(t, tt.wantFee, res.FeeAmount)
			assert.Equal(t, tt.wantNet, res.NetAmount)
		})
	}
}

func TestCalculator_RoundsHalfUpOnce(t *testing.T) {
	calc, err := NewCalculator(DefaultTiers(), WithMinimumFee(0))
	require.NoError(t, err)

	tests := []struct {
		amount  int64
		volume  int64
		wantFee int64
	}{
		{amount: 5, volume: 0, wantFee: 2},        // 1.5
		{amount: 15, volume: 6000000, wantFee: 2}, // 1.5
		{amount: 1, volume: 300000, wantFee: 0},   // 0.25
		{amount: 3, volume: 300000, wantFee: 1},   // 0.75
		{amount: 333, volume: 0, wantFee: 100},    // 99.9
	}

	for _, tt := range tests {
		res, err := calc.CalculateFee(tt.amount, tt.volume)
		require.NoError(t, err)
		assert.Equal(t, tt.wantFee, res.FeeAmount, "amount %d", tt.amount)
		assert.Equal(t, tt.amount, res.FeeAmount+res.NetAmount)
	}
}

func TestCalculator_RejectsNegativeInput(t *testing.T) {
	calc := newDefaultCalculator(t)

	_, err := calc.CalculateFee(-1, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = calc.CalculateFee(100, -1)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = calc.ResolveTier(-5)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewCalculator(DefaultTiers(), WithMinimumFee(-1))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCalculator_TierBoundaryCoverage(t *testing.T) {
	calc, err := NewCalculator([]Tier{
		{Name: "A", MonthlyVolumeMin: 0, MonthlyVolumeMax: 1000, FeePercentage: rate("0.30")},
		{Name: "B", MonthlyVolumeMin: 1001, MonthlyVolumeMax: 5000, FeePercentage: rate("0.25")},
		{Name: "C", MonthlyVolumeMin: 5001, MonthlyVolumeMax: 20000, FeePercentage: rate("0.20")},
		{Name: "D", MonthlyVolumeMin: 20001, MonthlyVolumeMax: 50000, FeePercentage: rate("0.15")},
		{Name: "E", MonthlyVolumeMin: 50001, MonthlyVolumeMax: Unbounded, FeePercentage: rate("0.10")},
	})
	require.NoError(t, err)

	prev := decimalOne
	for v := int64(0); v <= 100000; v++ {
		tier, err := calc.ResolveTier(v)
		require.NoError(t, err)

		matches := 0
		for _, candidate := range calc.Tiers() {
			if candidate.Contains(v) {
				matches++
			}
		}
		require.Equal(t, 1, matches, "volume %d", v)
		require.True(t, tier.Contains(v), "volume %d resolved to %s", v, tier.Name)
		require.True(t, tier.FeePercentage.LessThanOrEqual(prev), "rate increased at volume %d", v)
		prev = tier.FeePercentage
	}

	for _, v := range []int64{1000, 1001, 5000, 5001, 50000, 50001} {
		tier, _ := calc.ResolveTier(v)
		assert.True(t, tier.Contains(v))
	}
}

func TestCalculator_FloorAndConservation(t *testing.T) {
	calc := newDefaultCalculator(t)

	amounts := []int64{0, 1, 49, 99, 100, 333, 334, 999, 10001, 123457, 99999999}
	volumes := []int64{0, 100000, 100001, 499999, 500001, 2000000, 5000001, 1 << 40}

	for _, a := range amounts {
		for _, v := range volumes {
			res, err := calc.CalculateFee(a, v)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, res.FeeAmount, MinimumPlatformFee)
			assert.Equal(t, a, res.FeeAmount+res.NetAmount)

			again, err := calc.CalculateFee(a, v)
			require.NoError(t, err)
			assert.Equal(t, res, again)
		}
	}
}

func TestCalculator_SortsInput(t *testing.T) {
	tiers := DefaultTiers()
	reversed := make([]Tier, 0, len(tiers))
	for i := len(tiers) - 1; i >= 0; i-- {
		reversed = append(reversed, tiers[i])
	}

	calc, err := NewCalculator(reversed)
	require.NoError(t, err)
	assert.Equal(t, "Starter", calc.Tiers()[0].Name)
	assert.True(t, calc.RatesNonIncreasing())

	// The caller's slice is copied, not aliased.
	reversed[0].Name = "mutated"
	assert.Equal(t, "Enterprise", calc.Tiers()[len(tiers)-1].Name)
}

func TestCalculator_ResolveTierFallsBackToLowest(t *testing.T) {
	// Built directly to bypass validation: a gap between 10 and 20.
	calc := &Calculator{
		tiers: []Tier{
			{Name: "low", MonthlyVolumeMin: 0, MonthlyVolumeMax: 10, FeePercentage: rate("0.30")},
			{Name: "high", MonthlyVolumeMin: 20, MonthlyVolumeMax: Unbounded, FeePercentage: rate("0.10")},
		},
		minimumFee: MinimumPlatformFee,
	}

	tier, err := calc.ResolveTier(15)
	require.NoError(t, err)
	assert.Equal(t, "low", tier.Name)
}

func TestCalculator_RatesNonIncreasing(t *testing.T) {
	calc, err := NewCalculator([]Tier{
		{Name: "low", MonthlyVolumeMin: 0, MonthlyVolumeMax: 10, FeePercentage: rate("0.10")},
		{Name: "high", MonthlyVolumeMin: 11, MonthlyVolumeMax: Unbounded, FeePercentage: rate("0.20")},
	})
	require.NoError(t, err)
	assert.False(t, calc.RatesNonIncreasing())
}

func TestCalculator_ConcurrentUse(t *testing.T) {
	calc := newDefaultCalculator(t)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := calc.CalculateFee(int64(i)*1000, int64(i)*100000)
			if assert.NoError(t, err) {
				assert.Equal(t, int64(i)*1000, res.FeeAmount+res.NetAmount)
			}
		}(i)
	}
	wg.Wait()
}

func TestValidateTiers(t *testing.T) {
	base := func() []Tier { return DefaultTiers() }

	tests := []struct {
		name   string
		mutate func([]Tier) []Tier
	}{
		{"empty", func([]Tier) []Tier { return nil }},
		{"blank name", func(ts []Tier) []Tier { ts[1].Name = ""; return ts }},
		{"duplicate name", func(ts []Tier) []Tier { ts[2].Name = ts[1].Name; return ts }},
		{"gap", func(ts []Tier) []Tier { ts[1].MonthlyVolumeMin++; return ts }},
		{"overlap", func(ts []Tier) []Tier { ts[0].MonthlyVolumeMax++; return ts }},
		{"max below min", func(ts []Tier) []Tier { ts[0].MonthlyVolumeMax = -1; return ts }},
		{"rate above one", func(ts []Tier) []Tier { ts[0].FeePercentage = rate("1.5"); return ts }},
		{"negative rate", func(ts []Tier) []Tier { ts[0].FeePercentage = rate("-0.1"); return ts }},
		{"no unbounded tier", func(ts []Tier) []Tier { ts[4].MonthlyVolumeMax = 9000000; return ts }},
		{"unbounded not last", func(ts []Tier) []Tier { ts[3].MonthlyVolumeMax = Unbounded; return ts }},
		{"negative minimum", func(ts []Tier) []Tier {
			ts[0].MonthlyVolumeMin = -10
			return ts
		}},
		{"lowest tier above zero", func([]Tier) []Tier {
			return []Tier{{Name: "Only", MonthlyVolumeMin: 100000, MonthlyVolumeMax: Unbounded, FeePercentage: rate("0.10")}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCalculator(tt.mutate(base()))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMisconfiguredTierTable), "got %v", err)
		})
	}

	assert.NoError(t, ValidateTiers(DefaultTiers()))
}
