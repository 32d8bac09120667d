package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smartcafe/demand-forecast/internal/domain/forecast"
	apperrors "github.com/smartcafe/demand-forecast/pkg/errors"
	"github.com/smartcafe/demand-forecast/pkg/metrics"
)

const (
	endpointLegacy = "legacy"
	endpointV1     = "v1"
)

// ForecastHandler wires the HTTP transport to the forecast service.
type ForecastHandler struct {
	svc     forecast.Service
	metrics *metrics.ForecastMetrics
	logger  *slog.Logger
}

// NewForecastHandler constructs the forecast HTTP handler.
func NewForecastHandler(svc forecast.Service, m *metrics.ForecastMetrics, logger *slog.Logger) *ForecastHandler {
	return &ForecastHandler{
		svc:     svc,
		metrics: m,
		logger:  logger.With("component", "http.handler"),
	}
}

type forecastQuery struct {
	ItemID *int `form:"item_id" binding:"required"`
	Days   *int `form:"days"`
}

type legacyRecord struct {
	Date     string `json:"date"`
	Quantity int    `json:"quantity"`
}

type forecastResponse struct {
	Status string `json:"status"`
	forecast.Response
}

// LegacyForecast serves GET /forecast with the bare array contract existing
// callers depend on. Fetch failures are reported in-band with status 200.
func (h *ForecastHandler) LegacyForecast(c *gin.Context) {
	req, ok := h.bindRequest(c, endpointLegacy)
	if !ok {
		return
	}

	resp, err := h.svc.Forecast(c.Request.Context(), req)
	h.metrics.ObserveRequest(endpointLegacy, outcomeOf(resp, err))
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeSalesFetchFailed) {
			c.JSON(http.StatusOK, gin.H{"error": "Failed to fetch data: " + apperrors.Cause(err).Error()})
			return
		}
		abortWithError(c, fromDomainError(err))
		return
	}

	out := make([]legacyRecord, 0, len(resp.Points))
	for _, p := range resp.Points {
		out = append(out, legacyRecord{Date: p.Date, Quantity: p.Quantity})
	}
	c.JSON(http.StatusOK, out)
}

// Forecast serves GET /api/v1/forecast with an explicit status tag.
func (h *ForecastHandler) Forecast(c *gin.Context) {
	req, ok := h.bindRequest(c, endpointV1)
	if !ok {
		return
	}

	resp, err := h.svc.Forecast(c.Request.Context(), req)
	h.metrics.ObserveRequest(endpointV1, outcomeOf(resp, err))
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}

	c.JSON(http.StatusOK, forecastResponse{Status: "ok", Response: resp})
}

// Health reports liveness.
func (h *ForecastHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *ForecastHandler) bindRequest(c *gin.Context, endpoint string) (forecast.Request, bool) {
	var q forecastQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.metrics.ObserveRequest(endpoint, apperrors.CodeInvalidInput)
		abortWithError(c, NewHTTPError(http.StatusBadRequest, apperrors.CodeInvalidInput, "item_id is required and days must be an integer", err))
		return forecast.Request{}, false
	}
	return forecast.Request{ItemID: *q.ItemID, Days: q.Days}, true
}

func outcomeOf(resp forecast.Response, err error) string {
	switch {
	case err == nil && len(resp.Points) == 0:
		return "empty"
	case err == nil:
		return "ok"
	case apperrors.IsCode(err, apperrors.CodeInvalidInput):
		return apperrors.CodeInvalidInput
	case apperrors.IsCode(err, apperrors.CodeSalesFetchFailed):
		return apperrors.CodeSalesFetchFailed
	default:
		return apperrors.CodeForecastFailed
	}
}
