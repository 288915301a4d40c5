package payment

import (
	"context"

	"homefix/internal/models"
	"homefix/internal/services/commission"

	"github.com/google/uuid"
)

// CalculatorSource yields the active fee calculator.
type CalculatorSource interface {
	Current() *commission.Calculator
}

type VolumeService interface {
	MonthlyVolume(ctx context.Context, contractorID uuid.UUID) (int64, error)
	Invalidate(ctx context.Context, contractorID uuid.UUID)
}

type PaymentStore interface {
	Create(ctx context.Context, payment *models.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
}

// IntentCreator creates a payment intent at the payment processor.
type IntentCreator interface {
	CreatePaymentIntent(ctx context.Context, req IntentRequest) (*Intent, error)
	GetPaymentIntent(ctx context.Context, id string) (*Intent, error)
}
