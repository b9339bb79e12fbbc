// Package httpapi exposes the report and guide-request flows over HTTP.
package httpapi

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options configures the router
type Options struct {
	Reports ReportService
	Guides  GuideService // nil disables the /v1/guides routes
	Catalog CatalogSource
	Logger  *slog.Logger

	// AllowedOrigins restricts CORS; empty allows all origins
	AllowedOrigins []string
}

// SetupRouter creates and configures the Gin router.
func SetupRouter(opts Options) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if opts.Logger != nil {
		router.Use(requestLogger(opts.Logger))
	}

	// Setup CORS middleware.
	corsConfig := cors.DefaultConfig()
	if len(opts.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = opts.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	router.Use(cors.New(corsConfig))

	handler := NewHandler(opts.Reports, opts.Guides, opts.Catalog)

	// API v1 routes.
	v1 := router.Group("/v1")
	v1.GET("/report", handler.GetReport)
	v1.GET("/weather", handler.GetWeather)

	if opts.Guides != nil {
		guides := v1.Group("/guides")
		guides.GET("", handler.ListGuideRequests)
		guides.POST("", handler.CreateGuideRequest)
		guides.GET("/:id", handler.GetGuideRequest)
		guides.POST("/:id/toggle", handler.ToggleGuide)
	}

	// Health check.
	router.GET("/healthz", handler.HealthCheck)

	// Prometheus scrape endpoint.
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
