package payment

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"homefix/internal/models"
	"homefix/internal/repositories"
	"homefix/internal/services/commission"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DefaultCurrency is the only currency the platform charges in.
const DefaultCurrency = "usd"

// idempotencyNamespace scopes booking-derived payment IDs.
var idempotencyNamespace = uuid.MustParse("6f1c7a52-2d8e-4a53-9a43-3f0c8e7f5b11")

type Service struct {
	calculators CalculatorSource
	volumes     VolumeService
	payments    PaymentStore
	intents     IntentCreator
	currency    string
	log         *logrus.Logger
}

// NewService creates a new payment service
func NewService(
	calculators CalculatorSource,
	volumes VolumeService,
	payments PaymentStore,
	intents IntentCreator,
	log *logrus.Logger,
) *Service {
	if calculators == nil {
		panic("calculator source is required")
	}
	if volumes == nil {
		panic("volume service is required")
	}
	if payments == nil {
		panic("payment store is required")
	}
	if intents == nil {
		panic("intent creator is required")
	}

	return &Service{
		calculators: calculators,
		volumes:     volumes,
		payments:    payments,
		intents:     intents,
		currency:    DefaultCurrency,
		log:         log,
	}
}

// Quote prices a payment for a contractor at their trailing monthly volume.
func (s *Service) Quote(ctx context.Context, contractorID uuid.UUID, amount int64) (*Quote, error) {
	monthlyVolume, err := s.volumes.MonthlyVolume(ctx, contractorID)
	if err != nil {
		return nil, err
	}

	res, err := s.calculators.Current().CalculateFee(amount, monthlyVolume)
	if err != nil {
		return nil, err
	}

	return &Quote{
		FeeResult:     res,
		Amount:        amount,
		MonthlyVolume: monthlyVolume,
	}, nil
}

// CreateIntent quotes the payment, creates a processor intent carrying the platform fee and
// records it in the ledger.
func (s *Service) CreateIntent(ctx context.Context, req CreateIntentRequest) (*IntentResult, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if req.StripeAccountID == "" {
		return nil, ErrMissingDestination
	}

	currency := strings.ToLower(req.Currency)
	if currency == "" {
		currency = s.currency
	}
	if currency != s.currency {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, req.Currency)
	}

	paymentID := paymentIDFor(req)
	if req.BookingReference != "" {
		existing, err := s.payments.FindByID(ctx, paymentID)
		switch {
		case err == nil:
			return s.replay(ctx, existing)
		case !errors.Is(err, repositories.ErrPaymentNotFound):
			return nil, fmt.Errorf("failed to look up payment: %w", err)
		}
	}

	quote, err := s.Quote(ctx, req.ContractorID, req.Amount)
	if err != nil {
		return nil, fmt.Errorf("failed to quote payment: %w", err)
	}

	// The fee floor can exceed small amounts; the processor rejects such intents.
	if quote.FeeAmount > req.Amount {
		return nil, fmt.Errorf("%w: fee %d, amount %d", ErrFeeExceedsAmount, quote.FeeAmount, req.Amount)
	}

	metadata := map[string]string{
		"payment_id":     paymentID.String(),
		"contractor_id":  req.ContractorID.String(),
		"tier_name":      quote.TierName,
		"fee_percentage": quote.FeePercentage.String(),
		"monthly_volume": strconv.FormatInt(quote.MonthlyVolume, 10),
	}
	intent, err := s.intents.CreatePaymentIntent(ctx, IntentRequest{
		Amount:             req.Amount,
		Currency:           currency,
		ApplicationFee:     quote.FeeAmount,
		DestinationAccount: req.StripeAccountID,
		Description:        req.Description,
		IdempotencyKey:     paymentID.String(),
		Metadata:           metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	record := &models.Payment{
		ID:                    paymentID,
		ContractorID:          req.ContractorID,
		BookingReference:      req.BookingReference,
		Amount:                req.Amount,
		Currency:              currency,
		FeeAmount:             quote.FeeAmount,
		FeePercentage:         quote.FeePercentage,
		TierName:              quote.TierName,
		NetAmount:             quote.NetAmount,
		MonthlyVolume:         quote.MonthlyVolume,
		Status:                intent.Status,
		StripePaymentIntentID: intent.ID,
		Metadata:              models.Metadata(metadata),
	}
	if err := s.payments.Create(ctx, record); err != nil {
		// A concurrent retry of the same booking already recorded this intent.
		if !errors.Is(err, repositories.ErrDuplicatePayment) {
			s.log.WithError(err).WithFields(logrus.Fields{
				"payment_intent_id": intent.ID,
				"contractor_id":     req.ContractorID,
			}).Error("payment intent created but ledger write failed")
			return nil, fmt.Errorf("failed to record payment: %w", err)
		}
		s.log.WithField("payment_id", paymentID).Info("payment already recorded by a concurrent request")
	}

	s.volumes.Invalidate(ctx, req.ContractorID)

	s.log.WithFields(logrus.Fields{
		"payment_id":        paymentID,
		"payment_intent_id": intent.ID,
		"contractor_id":     req.ContractorID,
		"amount":            req.Amount,
		"fee_amount":        quote.FeeAmount,
		"tier_name":         quote.TierName,
	}).Info("payment intent created")

	return &IntentResult{
		PaymentID:       paymentID,
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		Status:          intent.Status,
		Quote:           *quote,
	}, nil
}

// replay returns the intent already recorded for a booking. The quote is the one stored
// with the payment so a retry never re-prices at a volume that includes itself.
func (s *Service) replay(ctx context.Context, existing *models.Payment) (*IntentResult, error) {
	intent, err := s.intents.GetPaymentIntent(ctx, existing.StripePaymentIntentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment intent: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"payment_id":        existing.ID,
		"payment_intent_id": intent.ID,
	}).Info("returning recorded payment intent")

	return &IntentResult{
		PaymentID:       existing.ID,
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		Status:          intent.Status,
		Quote: Quote{
			FeeResult: commission.FeeResult{
				FeeAmount:     existing.FeeAmount,
				FeePercentage: existing.FeePercentage,
				TierName:      existing.TierName,
				NetAmount:     existing.NetAmount,
			},
			Amount:        existing.Amount,
			MonthlyVolume: existing.MonthlyVolume,
		},
	}, nil
}

// paymentIDFor is stable per booking so a retried request reuses the same payment ID,
// idempotency key and intent parameters.
func paymentIDFor(req CreateIntentRequest) uuid.UUID {
	if req.BookingReference == "" {
		return uuid.New()
	}
	name := req.ContractorID.String() + ":" + req.BookingReference
	return uuid.NewSHA1(idempotencyNamespace, []byte(name))
}
