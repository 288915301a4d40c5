package payment

import (
	"homefix/internal/services/commission"

	"github.com/google/uuid"
)

// Quote is a fee calculation for a contractor at their current monthly volume.
type Quote struct {
	commission.FeeResult
	Amount        int64 `json:"amount"`
	MonthlyVolume int64 `json:"monthly_volume"`
}

type CreateIntentRequest struct {
	ContractorID     uuid.UUID `json:"contractor_id" validate:"required"`
	StripeAccountID  string    `json:"stripe_account_id" validate:"required,startswith=acct_"`
	Amount           int64     `json:"amount" validate:"required,gt=0"`
	Currency         string    `json:"currency" validate:"omitempty,len=3"`
	BookingReference string    `json:"booking_reference" validate:"max=100"`
	Description      string    `json:"description" validate:"max=500"`
}

type IntentResult struct {
	PaymentID       uuid.UUID `json:"payment_id"`
	PaymentIntentID string    `json:"payment_intent_id"`
	ClientSecret    string    `json:"client_secret"`
	Status          string    `json:"status"`
	Quote           Quote     `json:"quote"`
}

// IntentRequest is what the processor needs to create an intent with a platform fee.
type IntentRequest struct {
	Amount             int64
	Currency           string
	ApplicationFee     int64
	DestinationAccount string
	Description        string
	IdempotencyKey     string
	Metadata           map[string]string
}

type Intent struct {
	ID           string
	ClientSecret string
	Status       string
}
