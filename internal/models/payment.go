package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment statuses mirror the Stripe PaymentIntent statuses we record.
const (
	PaymentStatusRequiresPaymentMethod = "requires_payment_method"
	PaymentStatusProcessing            = "processing"
	PaymentStatusSucceeded             = "succeeded"
	PaymentStatusCanceled              = "canceled"
)

// Payment is a ledger row for one booking payment. Amounts are in cents.
type Payment struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ContractorID          uuid.UUID       `gorm:"type:uuid;index:idx_payments_contractor_created;not null"`
	BookingReference      string          `gorm:"index"`
	Amount                int64           `gorm:"not null"`
	Currency              string          `gorm:"not null;default:'usd'"`
	FeeAmount             int64           `gorm:"not null"`
	FeePercentage         decimal.Decimal `gorm:"type:numeric(6,5);not null"`
	TierName              string          `gorm:"not null"`
	NetAmount             int64           `gorm:"not null"`
	MonthlyVolume         int64           `gorm:"not null;default:0"`
	Status                string          `gorm:"not null;default:'requires_payment_method'"`
	StripePaymentIntentID string          `gorm:"uniqueIndex"`
	Metadata              Metadata        `gorm:"type:jsonb"`
	CreatedAt             time.Time       `gorm:"index:idx_payments_contractor_created"`
	UpdatedAt             time.Time
}
