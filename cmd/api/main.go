package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/srgjo27/park_booking/internal/adapter/handler"
	"github.com/srgjo27/park_booking/internal/adapter/mail"
	"github.com/srgjo27/park_booking/internal/adapter/notifier"
	"github.com/srgjo27/park_booking/internal/adapter/repository/postgres"
	"github.com/srgjo27/park_booking/internal/adapter/storage"
	"github.com/srgjo27/park_booking/internal/core/crop"
	"github.com/srgjo27/park_booking/internal/core/ports"
	"github.com/srgjo27/park_booking/internal/core/services"
	"github.com/srgjo27/park_booking/internal/core/validation"
	"github.com/srgjo27/park_booking/internal/platform/config"
	"github.com/srgjo27/park_booking/internal/platform/database"
	"github.com/srgjo27/park_booking/internal/platform/logger"
)

func main() {
	cfg, dotenv := config.Load()

	log, err := logger.New(cfg.Environment)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if !dotenv {
		log.Info(".env not found, using process environment")
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	db, err := database.NewPostgresDB(ctx, database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
	}, log)
	if err != nil {
		log.Fatal("failed to connect to db after retries", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatal("failed to apply schema", zap.Error(err))
	}

	gdb, err := database.NewGorm(db, !cfg.IsProduction())
	if err != nil {
		log.Fatal("failed to open gorm", zap.Error(err))
	}

	contentRepo := postgres.NewContentRepository(gdb)
	if err := contentRepo.AutoMigrate(); err != nil {
		log.Fatal("failed to migrate content tables", zap.Error(err))
	}

	redisClient := connectRedis(ctx, cfg.Redis, log)
	if redisClient != nil {
		defer redisClient.Close()
	}

	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		log.Fatal("failed to set up object storage", zap.Error(err))
	}

	validator := validation.New()

	var bookingNotifier ports.Notifier
	if cfg.NotifyURL != "" {
		bookingNotifier = notifier.NewHTTPNotifier(cfg.NotifyURL, cfg.NotifyTimeout)
		log.Info("booking notifications go to the notification endpoint", zap.String("url", cfg.NotifyURL))
	} else {
		mailer, err := mail.New(cfg.Mail, log)
		if err != nil {
			log.Fatal("failed to set up mailer", zap.Error(err))
		}
		bookingNotifier = services.NewNotificationService(mailer, validator, services.NotificationConfig{
			OperatorEmail: cfg.Mail.OperatorEmail,
			OperatorPhone: cfg.Mail.OperatorPhone,
			ParkName:      cfg.Mail.ParkName,
		}, log)
		log.Info("booking notifications are sent in process", zap.String("mail_driver", cfg.Mail.Driver))
	}

	bookingRepo := postgres.NewBookingRepository(db)
	packageRepo := postgres.NewPackageRepository(db)

	dispatcher := services.NewNotificationDispatcher(bookingNotifier, cfg.NotifyTimeout, log)
	bookingService := services.NewBookingService(
		bookingRepo,
		packageRepo,
		store,
		crop.New(cfg.PhotoMaxSide, crop.WithMaxPixels(cfg.PhotoMaxPixels)),
		validator,
		dispatcher,
		services.BookingConfig{
			PhotoMaxBytes:  cfg.PhotoMaxBytes,
			UploadTimeout:  cfg.UploadTimeout,
			PersistTimeout: cfg.PersistTimeout,
			SignedURLTTL:   cfg.Storage.SignedURLTTL,
		},
		log,
	)
	catalogService := services.NewCatalogService(packageRepo, redisClient, validator, cfg.CatalogCacheTTL, log)
	contentService := services.NewContentService(contentRepo, store, validator, cfg.PhotoMaxBytes, log)
	authService := services.NewAuthService(services.AuthConfig{
		Secret:       cfg.Auth.JWTSecret,
		TokenTTL:     cfg.Auth.TokenTTL,
		AdminEmail:   cfg.Auth.AdminEmail,
		PasswordHash: cfg.Auth.AdminPasswordHash,
	})

	routerCfg := handler.RouterConfig{
		CORSOrigins:    cfg.CORSOrigins,
		MetricsEnabled: cfg.MetricsEnabled,
	}
	if local, ok := store.(*storage.LocalStorage); ok {
		routerCfg.UploadsDir = local.Dir()
	}

	router := handler.NewRouter(
		routerCfg,
		handler.NewBookingHandler(bookingService, catalogService, contentService, cfg.PhotoMaxBytes),
		handler.NewAdminHandler(authService, bookingService, catalogService, contentService, cfg.PhotoMaxBytes),
		authService,
		log,
	)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadTimeout:       cfg.UploadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.UploadTimeout + cfg.PersistTimeout + 10*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server startup failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.NotifyTimeout+5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	if err := dispatcher.Wait(shutdownCtx); err != nil {
		log.Warn("pending booking notifications abandoned", zap.Error(err))
	}

	log.Info("server exiting")
}

// connectRedis returns nil when redis is unreachable; the catalog then reads straight from postgres.
func connectRedis(ctx context.Context, cfg config.RedisConfig, log *zap.Logger) *redis.Client {
	log.Info("connecting to redis", zap.String("addr", cfg.Addr))

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis unavailable, package cache disabled", zap.Error(err))
		_ = client.Close()
		return nil
	}

	log.Info("redis connected")
	return client
}
