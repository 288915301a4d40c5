package config

import (
	"fmt"
	"os"

	"homefix/internal/services/commission"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type tierFile struct {
	Tiers []tierEntry `yaml:"tiers"`
}

type tierEntry struct {
	Name          string `yaml:"name"`
	MinVolume     int64  `yaml:"min_volume"`
	MaxVolume     *int64 `yaml:"max_volume"`
	FeePercentage string `yaml:"fee_percentage"`
	Description   string `yaml:"description"`
}

// LoadTierFile reads a YAML commission table. Volumes are in cents; a tier without
// max_volume is unbounded. The table is parsed, not validated.
func LoadTierFile(path string) ([]commission.Tier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tier file: %w", err)
	}
	return ParseTiers(data)
}

// ParseTiers decodes a YAML commission table.
func ParseTiers(data []byte) ([]commission.Tier, error) {
	var f tierFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse tier file: %w", err)
	}

	tiers := make([]commission.Tier, 0, len(f.Tiers))
	for _, e := range f.Tiers {
		rate, err := decimal.NewFromString(e.FeePercentage)
		if err != nil {
			return nil, fmt.Errorf("tier %q: invalid fee_percentage %q: %w", e.Name, e.FeePercentage, err)
		}

		upper := commission.Unbounded
		if e.MaxVolume != nil {
			upper = *e.MaxVolume
		}

		tiers = append(tiers, commission.Tier{
			Name:             e.Name,
			MonthlyVolumeMin: e.MinVolume,
			MonthlyVolumeMax: upper,
			FeePercentage:    rate,
			Description:      e.Description,
		})
	}
	return tiers, nil
}
