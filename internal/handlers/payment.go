package handlers

import (
	"context"
	"errors"

	"homefix/internal/services/commission"
	"homefix/internal/services/payment"
	"homefix/internal/utils/response"
	"homefix/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type IntentService interface {
	CreateIntent(ctx context.Context, req payment.CreateIntentRequest) (*payment.IntentResult, error)
}

type PaymentHandler struct {
	payments IntentService
	log      *logrus.Logger
}

func NewPaymentHandler(payments IntentService, log *logrus.Logger) *PaymentHandler {
	return &PaymentHandler{
		payments: payments,
		log:      log,
	}
}

// CreateIntent creates a payment intent that retains the platform fee.
func (h *PaymentHandler) CreateIntent(c *fiber.Ctx) error {
	var input payment.CreateIntentRequest
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	v := validation.New()
	v.Struct(input)
	v.Amount("amount", input.Amount)
	if !v.Valid() {
		return response.ValidationErrors(c, v.Errors)
	}

	result, err := h.payments.CreateIntent(c.UserContext(), input)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrFeeExceedsAmount):
			return response.UnprocessableEntity(c, err.Error())
		case errors.Is(err, payment.ErrInvalidAmount),
			errors.Is(err, payment.ErrMissingDestination),
			errors.Is(err, payment.ErrUnsupportedCurrency),
			errors.Is(err, commission.ErrInvalidInput):
			return response.BadRequest(c, err.Error())
		}
		h.log.WithError(err).WithField("contractor_id", input.ContractorID).Error("create payment intent failed")
		return response.Error(c, fiber.StatusBadGateway, "Failed to create payment intent")
	}

	return response.Created(c, "Payment intent created", result)
}
