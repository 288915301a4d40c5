package handlers

import (
	"context"
	"errors"

	"homefix/internal/services/commission"
	"homefix/internal/services/payment"
	"homefix/internal/utils/response"
	"homefix/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CalculatorSource interface {
	Current() *commission.Calculator
}

type Quoter interface {
	Quote(ctx context.Context, contractorID uuid.UUID, amount int64) (*payment.Quote, error)
}

type FeeHandler struct {
	calculators CalculatorSource
	quoter      Quoter
}

func NewFeeHandler(calculators CalculatorSource, quoter Quoter) *FeeHandler {
	return &FeeHandler{
		calculators: calculators,
		quoter:      quoter,
	}
}

// tierView is the wire form of a tier; a nil max_volume is the open-ended top tier.
type tierView struct {
	Name          string          `json:"name" validate:"required"`
	MinVolume     int64           `json:"min_volume" validate:"gte=0"`
	MaxVolume     *int64          `json:"max_volume,omitempty"`
	FeePercentage decimal.Decimal `json:"fee_percentage"`
	Description   string          `json:"description"`
}

func toTierViews(tiers []commission.Tier) []tierView {
	views := make([]tierView, 0, len(tiers))
	for _, t := range tiers {
		v := tierView{
			Name:          t.Name,
			MinVolume:     t.MonthlyVolumeMin,
			FeePercentage: t.FeePercentage,
			Description:   t.Description,
		}
		if !t.IsUnbounded() {
			upper := t.MonthlyVolumeMax
			v.MaxVolume = &upper
		}
		views = append(views, v)
	}
	return views
}

func fromTierViews(views []tierView) []commission.Tier {
	tiers := make([]commission.Tier, 0, len(views))
	for _, v := range views {
		t := commission.Tier{
			Name:             v.Name,
			MonthlyVolumeMin: v.MinVolume,
			MonthlyVolumeMax: commission.Unbounded,
			FeePercentage:    v.FeePercentage,
			Description:      v.Description,
		}
		if v.MaxVolume != nil {
			t.MonthlyVolumeMax = *v.MaxVolume
		}
		tiers = append(tiers, t)
	}
	return tiers
}

func tierTable(calc *commission.Calculator) fiber.Map {
	return fiber.Map{
		"tiers":       toTierViews(calc.Tiers()),
		"minimum_fee": calc.MinimumFee(),
	}
}

// ListTiers returns the active commission table.
func (h *FeeHandler) ListTiers(c *fiber.Ctx) error {
	return response.Success(c, "Commission tiers retrieved", tierTable(h.calculators.Current()))
}

// Calculate prices an amount at an explicit monthly volume.
func (h *FeeHandler) Calculate(c *fiber.Ctx) error {
	var input struct {
		Amount        *int64 `json:"amount" validate:"required,gte=0"`
		MonthlyVolume *int64 `json:"monthly_volume" validate:"required,gte=0"`
	}

	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	v := validation.New()
	v.Struct(input)
	if !v.Valid() {
		return response.ValidationErrors(c, v.Errors)
	}

	res, err := h.calculators.Current().CalculateFee(*input.Amount, *input.MonthlyVolume)
	if err != nil {
		return feeError(c, err)
	}

	return response.Success(c, "Fee calculated", res)
}

// Quote prices an amount at the contractor's trailing monthly volume.
func (h *FeeHandler) Quote(c *fiber.Ctx) error {
	var input struct {
		ContractorID uuid.UUID `json:"contractor_id" validate:"required"`
		Amount       *int64    `json:"amount" validate:"required,gte=0"`
	}

	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	v := validation.New()
	v.Struct(input)
	if !v.Valid() {
		return response.ValidationErrors(c, v.Errors)
	}

	quote, err := h.quoter.Quote(c.UserContext(), input.ContractorID, *input.Amount)
	if err != nil {
		return feeError(c, err)
	}

	return response.Success(c, "Fee quoted", quote)
}

func feeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, commission.ErrInvalidInput):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, commission.ErrMisconfiguredTierTable):
		return response.ServerError(c, "Commission tiers are misconfigured")
	default:
		return response.ServerError(c, "Failed to calculate fee")
	}
}
