package commission

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var decimalOne = decimal.NewFromInt(1)

// Calculator maps a transaction amount and a contractor's monthly volume to a FeeResult.
// It is immutable after construction and safe for concurrent use.
type Calculator struct {
	tiers      []Tier
	minimumFee int64
}

type Option func(*Calculator)

// WithMinimumFee overrides MinimumPlatformFee.
func WithMinimumFee(cents int64) Option {
	return func(c *Calculator) {
		c.minimumFee = cents
	}
}

// NewCalculator validates tiers and returns a Calculator over a sorted copy of them.
func NewCalculator(tiers []Tier, opts ...Option) (*Calculator, error) {
	c := &Calculator{
		tiers:      sortedCopy(tiers),
		minimumFee: MinimumPlatformFee,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.minimumFee < 0 {
		return nil, fmt.Errorf("%w: minimum fee %d is negative", ErrInvalidInput, c.minimumFee)
	}
	if err := ValidateTiers(c.tiers); err != nil {
		return nil, err
	}
	return c, nil
}

// ResolveTier returns the tier whose range contains monthlyVolume.
func (c *Calculator) ResolveTier(monthlyVolume int64) (Tier, error) {
	if monthlyVolume < 0 {
		return Tier{}, fmt.Errorf("%w: monthly volume %d is negative", ErrInvalidInput, monthlyVolume)
	}

	for _, t := range c.tiers {
		if t.Contains(monthlyVolume) {
			return t, nil
		}
	}

	// Unreachable for a validated table; fall back to the lowest tier.
	return c.tiers[0], nil
}

// CalculateFee computes the platform fee for amount, rounded half-up to whole cents and
// floored at the minimum fee. NetAmount is not clamped and goes negative when amount
// is below the floor.
func (c *Calculator) CalculateFee(amount, monthlyVolume int64) (FeeResult, error) {
	if amount < 0 {
		return FeeResult{}, fmt.Errorf("%w: amount %d is negative", ErrInvalidInput, amount)
	}

	tier, err := c.ResolveTier(monthlyVolume)
	if err != nil {
		return FeeResult{}, err
	}

	fee := decimal.NewFromInt(amount).Mul(tier.FeePercentage).Round(0).IntPart()
	if fee < c.minimumFee {
		fee = c.minimumFee
	}

	return FeeResult{
		FeeAmount:     fee,
		FeePercentage: tier.FeePercentage,
		TierName:      tier.Name,
		NetAmount:     amount - fee,
	}, nil
}

// Tiers returns a copy of the sorted tier table.
func (c *Calculator) Tiers() []Tier {
	out := make([]Tier, len(c.tiers))
	copy(out, c.tiers)
	return out
}

func (c *Calculator) MinimumFee() int64 {
	return c.minimumFee
}

// RatesNonIncreasing reports whether higher-volume tiers never charge a higher rate.
func (c *Calculator) RatesNonIncreasing() bool {
	for i := 1; i < len(c.tiers); i++ {
		if c.tiers[i].FeePercentage.GreaterThan(c.tiers[i-1].FeePercentage) {
			return false
		}
	}
	return true
}
