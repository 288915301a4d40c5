package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"homefix/internal/models"
	"homefix/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

const (
	tokenIssuer     = "homefix-api"
	DefaultTokenTTL = 15 * time.Minute
)

type AdminStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
	TouchLastLogin(ctx context.Context, id uint) error
}

type Service struct {
	admins   AdminStore
	secret   []byte
	tokenTTL time.Duration
	log      *logrus.Logger
	now      func() time.Time
}

func NewService(admins AdminStore, jwtSecret string, tokenTTL time.Duration, log *logrus.Logger) *Service {
	if jwtSecret == "" {
		panic("jwt secret is required")
	}
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &Service{
		admins:   admins,
		secret:   []byte(jwtSecret),
		tokenTTL: tokenTTL,
		log:      log,
		now:      time.Now,
	}
}

// Login verifies admin credentials and returns a signed access token.
func (s *Service) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	admin, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repositories.ErrAdminNotFound) {
			s.log.WithError(err).Error("admin lookup failed")
		}
		return "", time.Time{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		s.log.WithField("admin_id", admin.ID).Warn("admin login failed: incorrect password")
		return "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateToken(admin)
	if err != nil {
		return "", time.Time{}, err
	}

	if err := s.admins.TouchLastLogin(ctx, admin.ID); err != nil {
		s.log.WithError(err).WithField("admin_id", admin.ID).Warn("failed to record admin login")
	}

	return token, expiresAt, nil
}

// GenerateToken signs an HS256 access token for admin.
func (s *Service) GenerateToken(admin *models.Admin) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.tokenTTL)

	claims := models.AdminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   strconv.FormatUint(uint64(admin.ID), 10),
		},
		AdminID:      admin.ID,
		Email:        admin.Email,
		Role:         models.RoleAdmin,
		Permissions:  models.GetDefaultPermissions(models.RoleAdmin),
		TokenVersion: admin.TokenVersion,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("error generating token: %w", err)
	}
	return signed, expiresAt, nil
}

// ParseToken validates a token string and returns its claims.
func (s *Service) ParseToken(tokenStr string) (*models.AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &models.AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*models.AdminClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// HashPassword returns a bcrypt hash suitable for models.Admin.Password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}
