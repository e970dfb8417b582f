package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/Santo1997/summer-sage-server/internal/auth"
	"github.com/Santo1997/summer-sage-server/internal/cache"
	"github.com/Santo1997/summer-sage-server/internal/config"
	"github.com/Santo1997/summer-sage-server/internal/db"
	"github.com/Santo1997/summer-sage-server/internal/gateway"
	"github.com/Santo1997/summer-sage-server/internal/handler"
	"github.com/Santo1997/summer-sage-server/internal/logger"
	"github.com/Santo1997/summer-sage-server/internal/repository"
	"github.com/Santo1997/summer-sage-server/internal/router"
	"github.com/Santo1997/summer-sage-server/internal/service"
)

const shutdownTimeout = 15 * time.Second

// @title Summer Camp API
// @version 1.0
// @description Course enrollment backend for the Summer Camp site: courses, users, carts and payments.
// @host localhost:5000
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	if err := run(cfg, log); err != nil {
		log.WithError(err).Error("server stopped")
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logrus.Logger) error {
	ctx := context.Background()

	client, err := db.NewMongo(ctx, cfg.MongoURI)
	if err != nil {
		return fmt.Errorf("database init: %w", err)
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(dctx); err != nil {
			log.WithError(err).Warn("mongo disconnect")
		}
	}()
	database := client.Database(cfg.DBName)
	log.WithField("db", cfg.DBName).Info("connected to mongo")

	if err := db.EnsureIndexes(ctx, database); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, log)
	defer cacheClient.Close()
	if err := cacheClient.Ping(ctx); err != nil {
		log.WithError(err).Warn("redis unavailable, role cache disabled until it recovers")
	}

	if cfg.DefaultSecret() {
		log.Warn("ACCESS_TOKEN is not set, tokens are signed with the default secret")
	}
	if cfg.StripeSecretKey == "" {
		log.Warn("PAYMENT_SECRET_KEY is empty, payment intents will fail")
	}

	// Initialize repositories
	courseRepo := repository.NewCourseRepository(database)
	userRepo := repository.NewUserRepository(database)
	cartRepo := repository.NewCartRepository(database)
	paymentRepo := repository.NewPaymentRepository(database)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	roleStore := auth.NewRoleStore(cacheClient, cfg.RoleCacheTTL)

	// Initialize services
	courseService := service.NewCourseService(courseRepo)
	userService := service.NewUserService(userRepo, roleStore, log)
	cartService := service.NewCartService(cartRepo)
	paymentService := service.NewPaymentService(paymentRepo, gateway.NewStripe(cfg.StripeSecretKey), log)
	authService := service.NewAuthService(jwtService)

	e := echo.New()
	router.Register(e, cfg, log, jwtService, userService, router.Handlers{
		Course:  handler.NewCourseHandler(courseService),
		User:    handler.NewUserHandler(userService),
		Cart:    handler.NewCartHandler(cartService),
		Payment: handler.NewPaymentHandler(paymentService),
		Auth:    handler.NewAuthHandler(authService),
		Health: handler.NewHealthHandler(func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		}),
	})

	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.IdleTimeout = 60 * time.Second

	serverErrors := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Addr()).Info("starting api server")
		serverErrors <- e.Start(cfg.Addr())
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.WithField("signal", sig.String()).Info("shutting down")

		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(sctx); err != nil {
			_ = e.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}
	return nil
}
