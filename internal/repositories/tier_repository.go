package repositories

import (
	"context"
	"fmt"

	"homefix/internal/models"
	"homefix/internal/services/commission"

	"gorm.io/gorm"
)

// TierRepository persists the commission tier table.
type TierRepository interface {
	List(ctx context.Context) ([]commission.Tier, error)
	ReplaceAll(ctx context.Context, tiers []commission.Tier) error
}

type tierRepository struct {
	db *gorm.DB
}

func NewTierRepository(db *gorm.DB) TierRepository {
	return &tierRepository{db: db}
}

func (r *tierRepository) List(ctx context.Context) ([]commission.Tier, error) {
	var rows []models.CommissionTier
	if err := r.db.WithContext(ctx).Order("monthly_volume_min ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list commission tiers: %w", err)
	}

	tiers := make([]commission.Tier, 0, len(rows))
	for _, row := range rows {
		tiers = append(tiers, TierFromModel(row))
	}
	return tiers, nil
}

// ReplaceAll swaps the stored table in a single database transaction.
func (r *tierRepository) ReplaceAll(ctx context.Context, tiers []commission.Tier) error {
	rows := make([]models.CommissionTier, 0, len(tiers))
	for _, t := range tiers {
		rows = append(rows, TierToModel(t))
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.CommissionTier{}).Error; err != nil {
			return fmt.Errorf("failed to clear commission tiers: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to insert commission tiers: %w", err)
		}
		return nil
	})
}

func TierFromModel(row models.CommissionTier) commission.Tier {
	upper := commission.Unbounded
	if row.MonthlyVolumeMax != nil {
		upper = *row.MonthlyVolumeMax
	}
	return commission.Tier{
		Name:             row.Name,
		MonthlyVolumeMin: row.MonthlyVolumeMin,
		MonthlyVolumeMax: upper,
		FeePercentage:    row.FeePercentage,
		Description:      row.Description,
	}
}

func TierToModel(t commission.Tier) models.CommissionTier {
	row := models.CommissionTier{
		Name:             t.Name,
		MonthlyVolumeMin: t.MonthlyVolumeMin,
		FeePercentage:    t.FeePercentage,
		Description:      t.Description,
	}
	if !t.IsUnbounded() {
		upper := t.MonthlyVolumeMax
		row.MonthlyVolumeMax = &upper
	}
	return row
}
