package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"github.com/rs/cors"

	"github.com/Danielmituku/solar-challenge-week0/internal/config"
	"github.com/Danielmituku/solar-challenge-week0/internal/handler"
	"github.com/Danielmituku/solar-challenge-week0/internal/middleware"
	"github.com/Danielmituku/solar-challenge-week0/internal/service"
)

// ReloadStatus reports the outcome of the last scheduled reload
type ReloadStatus interface {
	LastRun() (time.Time, error)
}

// SetupRouter builds the gin engine with every route of the dashboard API.
// reloads may be nil when no reload schedule is configured.
func SetupRouter(cfg *config.Config, dashboardService *service.DashboardService, limiter *middleware.RateLimiter, reloads ReloadStatus) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger())
	r.NoRoute(handler.NotFound)

	r.GET("/health", func(c *gin.Context) {
		status := "ok"
		if _, err := dashboardService.Meta(); err != nil {
			status = "loading"
		}
		body := gin.H{
			"status":  status,
			"message": "Solar dashboard API is running",
		}
		if reloads != nil {
			if last, err := reloads.LastRun(); !last.IsZero() {
				body["last_reload"] = last.UTC().Format(time.RFC3339)
				if err != nil {
					body["last_reload_error"] = err.Error()
				}
			}
		}
		c.JSON(http.StatusOK, body)
	})

	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	exportHandler := handler.NewExportHandler(dashboardService)
	adminHandler := handler.NewAdminHandler(dashboardService)

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(limiter))
	{
		api.GET("/meta", dashboardHandler.GetMeta)
		api.GET("/observations", dashboardHandler.GetObservations)
		api.GET("/overview", dashboardHandler.GetOverview)
		api.GET("/summary", dashboardHandler.GetSummary)
		api.GET("/timeseries/daily", dashboardHandler.GetDailySeries)
		api.GET("/distribution", dashboardHandler.GetDistribution)

		exports := api.Group("/export")
		{
			exports.GET("/observations", exportHandler.ExportObservations)
			exports.GET("/summary", exportHandler.ExportSummary)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.RequireAdmin(cfg.JWTSecret))
		{
			admin.POST("/reload", adminHandler.Reload)
		}
	}

	return r
}

// NewHTTPHandler wraps the engine with CORS and response compression
func NewHTTPHandler(cfg *config.Config, engine http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposedHeaders: []string{"Content-Disposition", middleware.RequestIDHeader, "Retry-After"},
	})
	return c.Handler(gzhttp.GzipHandler(engine))
}
