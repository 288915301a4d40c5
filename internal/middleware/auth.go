// Package middleware provides HTTP middleware components for the application.
// It includes admin authentication and permission checks for the fiber web framework.
package middleware

import (
	"strings"

	"homefix/internal/models"
	"homefix/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const claimsKey = "claims"

// TokenParser validates a bearer token and returns its claims.
type TokenParser interface {
	ParseToken(tokenStr string) (*models.AdminClaims, error)
}

// AuthMiddleware handles JWT validation for admin routes.
type AuthMiddleware struct {
	tokens TokenParser
	log    *logrus.Logger
}

func NewAuthMiddleware(tokens TokenParser, log *logrus.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
		log:    log,
	}
}

// Handler validates the Authorization header and stores the admin claims in the request context.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return response.Error(c, fiber.StatusUnauthorized, "missing authorization header")
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return response.Error(c, fiber.StatusUnauthorized, "invalid authorization format")
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	claims, err := m.tokens.ParseToken(tokenString)
	if err != nil {
		m.log.WithError(err).WithField("path", c.Path()).Warn("rejected admin token")
		return response.Error(c, fiber.StatusUnauthorized, "invalid token")
	}

	if claims.Role != models.RoleAdmin {
		return response.Forbidden(c)
	}

	c.Locals(claimsKey, claims)
	c.Locals("adminID", claims.AdminID)

	return c.Next()
}

// RequirePermission rejects requests whose claims lack permission.
// It must run after Handler.
func RequirePermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := Claims(c)
		if !ok {
			return response.Unauthorized(c)
		}
		if !claims.HasPermission(permission) {
			return response.Forbidden(c)
		}
		return c.Next()
	}
}

// Claims returns the admin claims stored by Handler.
func Claims(c *fiber.Ctx) (*models.AdminClaims, bool) {
	claims, ok := c.Locals(claimsKey).(*models.AdminClaims)
	return claims, ok
}
