package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/srgjo27/park_booking/internal/core/services"
	"go.uber.org/zap"
)

type RouterConfig struct {
	CORSOrigins    []string
	MetricsEnabled bool
	// UploadsDir is served under /uploads when images are kept on local disk.
	UploadsDir string
}

func NewRouter(cfg RouterConfig, bookings *BookingHandler, admin *AdminHandler, auth *services.AuthService, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(log), cors.New(apiCORS(cfg.CORSOrigins)))

	if cfg.UploadsDir != "" {
		r.Static("/uploads", cfg.UploadsDir)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if cfg.MetricsEnabled {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	api := r.Group("/api")
	{
		api.POST("/bookings", bookings.CreateBooking)
		api.GET("/packages", bookings.ListPackages)
		api.GET("/attractions", bookings.ListAttractions)
		api.GET("/content/:section", bookings.GetContent)

		api.POST("/admin/login", admin.Login)

		protected := api.Group("/admin", RequireAdmin(auth))
		{
			protected.GET("/bookings", admin.ListBookings)
			protected.PATCH("/bookings/:id/status", admin.UpdateBookingStatus)
			protected.DELETE("/bookings/:id", admin.DeleteBooking)

			protected.GET("/packages", admin.ListPackages)
			protected.POST("/packages", admin.CreatePackage)
			protected.PUT("/packages/:id", admin.UpdatePackage)
			protected.PATCH("/packages/:id/active", admin.SetPackageActive)
			protected.DELETE("/packages/:id", admin.DeletePackage)

			protected.POST("/attractions", admin.CreateAttraction)
			protected.PUT("/attractions/:id", admin.UpdateAttraction)
			protected.POST("/attractions/:id/image", admin.UploadAttractionImage)
			protected.DELETE("/attractions/:id", admin.DeleteAttraction)

			protected.POST("/content/hero/image", admin.UploadHeroImage)
			protected.PUT("/content/:section", admin.SaveContent)
		}
	}

	return r
}

func apiCORS(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}

	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}

	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

// NewNotifyRouter serves the standalone notification endpoint.
func NewNotifyRouter(h *NotificationHandler, metricsEnabled bool, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(log), cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"POST", "OPTIONS"},
		AllowHeaders:    notifyAllowHeaders,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if metricsEnabled {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	for _, path := range []string{"/", "/send-booking-emails"} {
		r.POST(path, h.SendBookingEmails)
		r.OPTIONS(path, h.Preflight)
	}

	return r
}
