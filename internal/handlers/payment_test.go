package handlers

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"homefix/internal/services/payment"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockIntentService struct {
	mock.Mock
}

func (m *mockIntentService) CreateIntent(ctx context.Context, req payment.CreateIntentRequest) (*payment.IntentResult, error) {
	args := m.Called(ctx, req)
	if r := args.Get(0); r != nil {
		return r.(*payment.IntentResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func newPaymentApp(svc IntentService) *fiber.App {
	h := NewPaymentHandler(svc, quietLogger())
	app := fiber.New()
	app.Post("/payments/intents", h.CreateIntent)
	return app
}

func TestPaymentHandler_CreateIntent(t *testing.T) {
	contractorID := uuid.New()
	body := map[string]interface{}{
		"contractor_id":     contractorID,
		"stripe_account_id": "acct_123",
		"amount":            15000,
		"booking_reference": "BK-1",
	}

	t.Run("created", func(t *testing.T) {
		svc := &mockIntentService{}
		svc.On("CreateIntent", mock.Anything, mock.MatchedBy(func(req payment.CreateIntentRequest) bool {
			return req.ContractorID == contractorID && req.Amount == 15000 && req.StripeAccountID == "acct_123"
		})).Return(&payment.IntentResult{PaymentIntentID: "pi_1", Status: "requires_payment_method"}, nil)

		status, env := doJSON(t, newPaymentApp(svc), "POST", "/payments/intents", body)
		require.Equal(t, fiber.StatusCreated, status)
		assert.Contains(t, string(env.Data), "pi_1")
		svc.AssertExpectations(t)
	})

	t.Run("validation", func(t *testing.T) {
		svc := &mockIntentService{}
		status, env := doJSON(t, newPaymentApp(svc), "POST", "/payments/intents", map[string]interface{}{
			"contractor_id":     contractorID,
			"stripe_account_id": "not-an-account",
			"amount":            0,
		})
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Contains(t, env.Errors, "stripe_account_id")
		assert.Contains(t, env.Errors, "amount")
		svc.AssertNotCalled(t, "CreateIntent", mock.Anything, mock.Anything)
	})

	errCases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"fee exceeds amount", fmt.Errorf("%w: fee 100, amount 50", payment.ErrFeeExceedsAmount), fiber.StatusUnprocessableEntity},
		{"unsupported currency", fmt.Errorf("%w: eur", payment.ErrUnsupportedCurrency), fiber.StatusBadRequest},
		{"processor failure", errors.New("stripe unavailable"), fiber.StatusBadGateway},
	}
	for _, tc := range errCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockIntentService{}
			svc.On("CreateIntent", mock.Anything, mock.Anything).Return(nil, tc.err)

			status, _ := doJSON(t, newPaymentApp(svc), "POST", "/payments/intents", body)
			assert.Equal(t, tc.wantStatus, status)
		})
	}
}
