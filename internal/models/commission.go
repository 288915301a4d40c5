package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CommissionTier is the persisted form of a commission tier. A NULL
// MonthlyVolumeMax marks the unbounded top tier.
type CommissionTier struct {
	ID               uint            `gorm:"primarykey"`
	Name             string          `gorm:"uniqueIndex;not null"`
	MonthlyVolumeMin int64           `gorm:"not null"`
	MonthlyVolumeMax *int64          `gorm:"default:null"`
	FeePercentage    decimal.Decimal `gorm:"type:numeric(6,5);not null"`
	Description      string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
