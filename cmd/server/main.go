// Package main is the entry point for the application.
// It initializes all dependencies, sets up the HTTP server,
// and starts the application.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homefix/internal/config"
	"homefix/internal/handlers"
	"homefix/internal/logging"
	"homefix/internal/middleware"
	"homefix/internal/repositories"
	"homefix/internal/repositories/cache"
	"homefix/internal/routes"
	"homefix/internal/services/auth"
	"homefix/internal/services/commission"
	"homefix/internal/services/payment"
	"homefix/internal/services/tiers"
	"homefix/internal/services/volume"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
)

func main() {
	envErr := config.LoadEnv()

	log := logging.New(config.GetEnv("ENV", "development"), config.GetEnv("LOG_LEVEL", "info"))
	if envErr != nil {
		log.WithError(envErr).Info("no .env file loaded, using process environment")
	}

	if err := run(log); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}

// run owns every resource it opens; its deferred closes complete before main exits.
func run(log *logrus.Logger) error {
	db, err := repositories.InitDB(log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	redisClient := cache.NewRedisClient(&cache.RedisConfig{
		Host:     config.GetEnv("REDIS_HOST", "localhost"),
		Port:     config.GetEnv("REDIS_PORT", "6379"),
		Password: config.GetEnv("REDIS_PASSWORD", ""),
		DB:       config.GetIntEnv("REDIS_DB", 0),
	})
	cacheService := cache.NewCacheService(redisClient, config.GetDurationEnv("VOLUME_CACHE_TTL", 5*time.Minute))

	var volumeCache volume.Cache = cacheService
	if err := cacheService.HealthCheck(context.Background()); err != nil {
		log.WithError(err).Warn("redis unavailable, monthly volume will be read from postgres")
		volumeCache = nil
	}

	defer func() {
		if err := repositories.CloseDB(db); err != nil {
			log.WithError(err).Warn("failed to close database connection")
		}
		if err := cacheService.Close(); err != nil {
			log.WithError(err).Warn("failed to close redis connection")
		}
	}()

	tierRepo := repositories.NewTierRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	adminRepo := repositories.NewAdminRepository(db)

	tierManager, err := tiers.NewManager(context.Background(), tiers.ManagerConfig{
		Source:     config.GetEnv("TIER_SOURCE", config.TierSourceBuiltin),
		FilePath:   config.GetEnv("COMMISSION_TIERS_FILE", "configs/commission_tiers.yaml"),
		MinimumFee: config.GetInt64Env("MINIMUM_PLATFORM_FEE_CENTS", commission.MinimumPlatformFee),
	}, tierRepo, log)
	if err != nil {
		return fmt.Errorf("failed to load commission tiers: %w", err)
	}

	jwtSecret := config.GetEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	stripeKey := config.GetEnv("STRIPE_SECRET_KEY", "")
	if stripeKey == "" {
		log.Warn("STRIPE_SECRET_KEY is not set, payment intent creation will fail")
	}

	volumeService := volume.NewService(paymentRepo, volumeCache, log)
	paymentService := payment.NewService(
		tierManager.Registry(),
		volumeService,
		paymentRepo,
		payment.NewStripeIntentCreator(stripeKey),
		log,
	)
	authService := auth.NewService(adminRepo, jwtSecret, config.GetDurationEnv("JWT_TTL", auth.DefaultTokenTTL), log)

	app := fiber.New(fiber.Config{
		AppName:      "homefix-api",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173"),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowCredentials: true,
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	routes.SetupRoutes(app, routes.Handlers{
		Health: handlers.NewHealthHandler(map[string]handlers.Pinger{
			"database": func(ctx context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			},
			"redis": cacheService.HealthCheck,
		}),
		Fees:    handlers.NewFeeHandler(tierManager.Registry(), paymentService),
		Payment: handlers.NewPaymentHandler(paymentService, log),
		Admin:   handlers.NewAdminHandler(authService, tierManager, log),
		Auth:    middleware.NewAuthMiddleware(authService, log),
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("shutting down server")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Error("server shutdown failed")
		}
	}()

	port := config.GetEnv("PORT", "3000")
	log.WithFields(logrus.Fields{"port": port}).Info("starting server")
	if err := app.Listen(":" + port); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}
