package repositories

import (
	"testing"

	"homefix/internal/services/commission"

	"github.com/stretchr/testify/assert"
)

func TestTierModelRoundTrip(t *testing.T) {
	for _, tier := range commission.DefaultTiers() {
		row := TierToModel(tier)
		if tier.IsUnbounded() {
			assert.Nil(t, row.MonthlyVolumeMax, tier.Name)
		} else {
			assert.Equal(t, tier.MonthlyVolumeMax, *row.MonthlyVolumeMax, tier.Name)
		}
		assert.Equal(t, tier, TierFromModel(row))
	}
}
