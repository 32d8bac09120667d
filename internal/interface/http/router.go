package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smartcafe/demand-forecast/internal/infra/config"
	"github.com/smartcafe/demand-forecast/pkg/metrics"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *ForecastHandler, m *metrics.ForecastMetrics) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestID(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(handler.logger),
	)

	router.GET("/healthz", handler.Health)
	router.GET("/forecast", handler.LegacyForecast)

	api := router.Group("/api/v1")
	{
		api.GET("/forecast", handler.Forecast)
	}

	if cfg.Metrics.Enabled && m != nil {
		router.GET(cfg.Metrics.Path, gin.WrapH(m.Handler()))
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
