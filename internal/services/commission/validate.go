package commission

import (
	"fmt"
	"sort"
)

// ValidateTiers checks a tier table sorted by MonthlyVolumeMin.
func ValidateTiers(tiers []Tier) error {
	if len(tiers) == 0 {
		return fmt.Errorf("%w: no tiers configured", ErrMisconfiguredTierTable)
	}
	if tiers[0].MonthlyVolumeMin != 0 {
		return fmt.Errorf("%w: lowest tier %q starts at %d, not 0",
			ErrMisconfiguredTierTable, tiers[0].Name, tiers[0].MonthlyVolumeMin)
	}

	names := make(map[string]struct{}, len(tiers))
	unbounded := 0

	for i, t := range tiers {
		if t.Name == "" {
			return fmt.Errorf("%w: tier %d has no name", ErrMisconfiguredTierTable, i)
		}
		if _, dup := names[t.Name]; dup {
			return fmt.Errorf("%w: duplicate tier name %q", ErrMisconfiguredTierTable, t.Name)
		}
		names[t.Name] = struct{}{}

		if t.MonthlyVolumeMin < 0 {
			return fmt.Errorf("%w: tier %q has negative minimum", ErrMisconfiguredTierTable, t.Name)
		}
		if t.MonthlyVolumeMax < t.MonthlyVolumeMin {
			return fmt.Errorf("%w: tier %q maximum is below its minimum", ErrMisconfiguredTierTable, t.Name)
		}
		if t.FeePercentage.IsNegative() || t.FeePercentage.GreaterThan(decimalOne) {
			return fmt.Errorf("%w: tier %q fee percentage %s outside [0, 1]",
				ErrMisconfiguredTierTable, t.Name, t.FeePercentage)
		}

		if t.IsUnbounded() {
			unbounded++
			if i != len(tiers)-1 {
				return fmt.Errorf("%w: unbounded tier %q is not last", ErrMisconfiguredTierTable, t.Name)
			}
			continue
		}

		if i == len(tiers)-1 {
			break
		}
		if next := tiers[i+1]; t.MonthlyVolumeMax+1 != next.MonthlyVolumeMin {
			return fmt.Errorf("%w: gap or overlap between %q (max %d) and %q (min %d)",
				ErrMisconfiguredTierTable, t.Name, t.MonthlyVolumeMax, next.Name, next.MonthlyVolumeMin)
		}
	}

	if unbounded != 1 {
		return fmt.Errorf("%w: expected exactly one unbounded tier, found %d", ErrMisconfiguredTierTable, unbounded)
	}
	return nil
}

func sortedCopy(tiers []Tier) []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MonthlyVolumeMin < out[j].MonthlyVolumeMin
	})
	return out
}
