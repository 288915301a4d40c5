package commission

import (
	"math"

	"github.com/shopspring/decimal"
)

// Unbounded marks the open upper end of the terminal tier.
const Unbounded int64 = math.MaxInt64

// MinimumPlatformFee is the fee floor in cents.
const MinimumPlatformFee int64 = 100

// Tier is a contiguous band of monthly volume (in cents) with the platform's fee rate.
type Tier struct {
	Name             string          `json:"name"`
	MonthlyVolumeMin int64           `json:"monthly_volume_min"`
	MonthlyVolumeMax int64           `json:"monthly_volume_max"`
	FeePercentage    decimal.Decimal `json:"fee_percentage"`
	Description      string          `json:"description"`
}

func (t Tier) IsUnbounded() bool {
	return t.MonthlyVolumeMax == Unbounded
}

// Contains reports whether volume falls inside the tier's inclusive range.
func (t Tier) Contains(volume int64) bool {
	return volume >= t.MonthlyVolumeMin && (t.IsUnbounded() || volume <= t.MonthlyVolumeMax)
}

// FeeResult is the outcome of one fee calculation.
type FeeResult struct {
	FeeAmount     int64           `json:"fee_amount"`
	FeePercentage decimal.Decimal `json:"fee_percentage"`
	TierName      string          `json:"tier_name"`
	NetAmount     int64           `json:"net_amount"`
}

// DefaultTiers returns the compiled-in commission table.
func DefaultTiers() []Tier {
	return []Tier{
		{
			Name:             "Starter",
			MonthlyVolumeMin: 0,
			MonthlyVolumeMax: 100000,
			FeePercentage:    decimal.RequireFromString("0.30"),
			Description:      "Up to $1,000 monthly volume",
		},
		{
			Name:             "Growing",
			MonthlyVolumeMin: 100001,
			MonthlyVolumeMax: 500000,
			FeePercentage:    decimal.RequireFromString("0.25"),
			Description:      "$1,000.01 - $5,000 monthly volume",
		},
		{
			Name:             "Professional",
			MonthlyVolumeMin: 500001,
			MonthlyVolumeMax: 2000000,
			FeePercentage:    decimal.RequireFromString("0.20"),
			Description:      "$5,000.01 - $20,000 monthly volume",
		},
		{
			Name:             "Business",
			MonthlyVolumeMin: 2000001,
			MonthlyVolumeMax: 5000000,
			FeePercentage:    decimal.RequireFromString("0.15"),
			Description:      "$20,000.01 - $50,000 monthly volume",
		},
		{
			Name:             "Enterprise",
			MonthlyVolumeMin: 5000001,
			MonthlyVolumeMax: Unbounded,
			FeePercentage:    decimal.RequireFromString("0.10"),
			Description:      "Over $50,000 monthly volume",
		},
	}
}
