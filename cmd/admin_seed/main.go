package main

import (
	"context"
	"errors"

	"homefix/internal/config"
	"homefix/internal/logging"
	"homefix/internal/models"
	"homefix/internal/repositories"
	"homefix/internal/services/auth"
	"homefix/internal/services/commission"
	"homefix/internal/validation"
)

func main() {
	_ = config.LoadEnv()
	log := logging.New(config.GetEnv("ENV", "development"), "info")

	adminEmail := config.GetEnv("ADMIN_EMAIL", "")
	adminPassword := config.GetEnv("ADMIN_PASSWORD", "")
	if adminEmail == "" || adminPassword == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set in environment")
	}

	v := validation.New()
	v.Password("ADMIN_PASSWORD", adminPassword)
	if !v.Valid() {
		log.WithField("errors", v.Errors).Fatal("admin password is too weak")
	}

	db, err := repositories.InitDB(log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}
	defer func() {
		if err := repositories.CloseDB(db); err != nil {
			log.WithError(err).Warn("failed to close PostgreSQL connection")
		}
	}()

	ctx := context.Background()
	admins := repositories.NewAdminRepository(db)

	_, err = admins.FindByEmail(ctx, adminEmail)
	switch {
	case err == nil:
		log.Info("admin account already exists")
	case errors.Is(err, repositories.ErrAdminNotFound):
		hashed, err := auth.HashPassword(adminPassword)
		if err != nil {
			log.WithError(err).Fatal("failed to hash password")
		}
		if err := admins.Create(ctx, &models.Admin{
			Email:        adminEmail,
			Password:     hashed,
			TokenVersion: 1,
		}); err != nil {
			log.WithError(err).Fatal("failed to create admin account")
		}
		log.WithField("email", adminEmail).Info("admin account created")
	default:
		log.WithError(err).Fatal("failed to look up admin account")
	}

	tierRepo := repositories.NewTierRepository(db)
	existing, err := tierRepo.List(ctx)
	if err != nil {
		log.WithError(err).Fatal("failed to read commission tiers")
	}
	if len(existing) > 0 {
		log.WithField("tiers", len(existing)).Info("commission tiers already seeded")
		return
	}

	seed := commission.DefaultTiers()
	if path := config.GetEnv("COMMISSION_TIERS_FILE", ""); path != "" {
		seed, err = config.LoadTierFile(path)
		if err != nil {
			log.WithError(err).Fatal("failed to read tier file")
		}
	}

	calc, err := commission.NewCalculator(seed)
	if err != nil {
		log.WithError(err).Fatal("refusing to seed an invalid tier table")
	}
	if err := tierRepo.ReplaceAll(ctx, calc.Tiers()); err != nil {
		log.WithError(err).Fatal("failed to seed commission tiers")
	}
	log.WithField("tiers", len(calc.Tiers())).Info("commission tiers seeded")
}
