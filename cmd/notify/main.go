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
	"go.uber.org/zap"

	"github.com/srgjo27/park_booking/internal/adapter/handler"
	"github.com/srgjo27/park_booking/internal/adapter/mail"
	"github.com/srgjo27/park_booking/internal/core/services"
	"github.com/srgjo27/park_booking/internal/core/validation"
	"github.com/srgjo27/park_booking/internal/platform/config"
	"github.com/srgjo27/park_booking/internal/platform/logger"
)

func main() {
	cfg, _ := config.Load()

	log, err := logger.New(cfg.Environment)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	mailer, err := mail.New(cfg.Mail, log)
	if err != nil {
		log.Fatal("failed to set up mailer", zap.Error(err))
	}

	svc := services.NewNotificationService(mailer, validation.New(), services.NotificationConfig{
		OperatorEmail: cfg.Mail.OperatorEmail,
		OperatorPhone: cfg.Mail.OperatorPhone,
		ParkName:      cfg.Mail.ParkName,
	}, log)

	server := &http.Server{
		Addr:              ":" + cfg.NotifyPort,
		Handler:           handler.NewNotifyRouter(handler.NewNotificationHandler(svc), cfg.MetricsEnabled, log),
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.NotifyTimeout + 5*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Info("notification endpoint starting", zap.String("addr", server.Addr), zap.String("mail_driver", cfg.Mail.Driver))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server startup failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("shutting down notification endpoint")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}
}
