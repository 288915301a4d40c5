package handlers

import (
	"context"
	"errors"
	"time"

	"homefix/internal/services/auth"
	"homefix/internal/services/commission"
	"homefix/internal/services/tiers"
	"homefix/internal/utils/response"
	"homefix/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, time.Time, error)
}

type TierManager interface {
	Replace(ctx context.Context, tiers []commission.Tier) (*commission.Calculator, error)
	Reload(ctx context.Context) (*commission.Calculator, error)
}

type AdminHandler struct {
	auth  Authenticator
	tiers TierManager
	log   *logrus.Logger
}

func NewAdminHandler(auth Authenticator, tiers TierManager, log *logrus.Logger) *AdminHandler {
	return &AdminHandler{
		auth:  auth,
		tiers: tiers,
		log:   log,
	}
}

// Login exchanges admin credentials for an access token.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,max=72"`
	}

	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	v := validation.New()
	v.Struct(input)
	if !v.Valid() {
		return response.ValidationErrors(c, v.Errors)
	}

	token, expiresAt, err := h.auth.Login(c.UserContext(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return response.Error(c, fiber.StatusUnauthorized, "Invalid email or password")
		}
		return response.ServerError(c, "Authentication failed")
	}

	return c.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_at":   expiresAt,
	})
}

// ReplaceTiers validates, persists and activates a new commission table.
func (h *AdminHandler) ReplaceTiers(c *fiber.Ctx) error {
	var input struct {
		Tiers []tierView `json:"tiers" validate:"required,min=1,dive"`
	}

	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	v := validation.New()
	v.Struct(input)
	if !v.Valid() {
		return response.ValidationErrors(c, v.Errors)
	}

	calc, err := h.tiers.Replace(c.UserContext(), fromTierViews(input.Tiers))
	if err != nil {
		if errors.Is(err, commission.ErrMisconfiguredTierTable) || errors.Is(err, commission.ErrInvalidInput) {
			return response.UnprocessableEntity(c, err.Error())
		}
		if errors.Is(err, tiers.ErrReadOnlySource) {
			return response.Error(c, fiber.StatusConflict, err.Error())
		}
		h.log.WithError(err).Error("replace commission tiers failed")
		return response.ServerError(c, "Failed to update commission tiers")
	}

	h.audit(c, "replace")
	return response.Success(c, "Commission tiers updated", tierTable(calc))
}

// ReloadTiers re-reads the configured tier source.
func (h *AdminHandler) ReloadTiers(c *fiber.Ctx) error {
	calc, err := h.tiers.Reload(c.UserContext())
	if err != nil {
		h.log.WithError(err).Error("reload commission tiers failed")
		if errors.Is(err, commission.ErrMisconfiguredTierTable) {
			return response.UnprocessableEntity(c, err.Error())
		}
		return response.ServerError(c, "Failed to reload commission tiers")
	}

	h.audit(c, "reload")
	return response.Success(c, "Commission tiers reloaded", tierTable(calc))
}

func (h *AdminHandler) audit(c *fiber.Ctx, action string) {
	h.log.WithFields(logrus.Fields{
		"action":   action,
		"admin_id": c.Locals("adminID"),
	}).Info("commission tiers changed")
}
