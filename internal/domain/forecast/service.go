package forecast

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	apperrors "github.com/smartcafe/demand-forecast/pkg/errors"
	"github.com/smartcafe/demand-forecast/pkg/metrics"
	"github.com/smartcafe/demand-forecast/pkg/util"
)

// Service exposes the demand forecast pipeline.
type Service interface {
	Forecast(ctx context.Context, req Request) (Response, error)
}

// SalesSource retrieves the full sales history.
type SalesSource interface {
	FetchSalesHistory(ctx context.Context) ([]SalesRecord, error)
}

type service struct {
	cfg      Config
	source   SalesSource
	newModel ModelFactory
	metrics  *metrics.ForecastMetrics
	logger   *slog.Logger
	now      func() time.Time
}

// NewService wires up the forecast domain.
func NewService(cfg Config, source SalesSource, newModel ModelFactory, m *metrics.ForecastMetrics, logger *slog.Logger) Service {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &service{
		cfg:      cfg,
		source:   source,
		newModel: newModel,
		metrics:  m,
		logger:   logger.With("component", "forecast.service"),
		now:      util.NowUTC,
	}
}

func (s *service) Forecast(ctx context.Context, req Request) (Response, error) {
	horizon, err := s.resolveHorizon(req.Days)
	if err != nil {
		return Response{}, err
	}
	today := util.CalendarDay(s.now(), s.cfg.Location)
	res := Response{
		ItemID:  req.ItemID,
		Horizon: horizon,
		Today:   today.Format(dateLayout),
		Points:  []Record{},
	}

	start := time.Now()
	records, err := s.source.FetchSalesHistory(ctx)
	s.metrics.ObserveFetch(err, len(records), time.Since(start))
	if err != nil {
		s.logger.Warn("sales history fetch failed", "item_id", req.ItemID, "error", err)
		return Response{}, apperrors.Wrap(apperrors.CodeSalesFetchFailed, "failed to fetch sales history", err)
	}

	series := Normalize(records, req.ItemID, today)
	if len(series) == 0 {
		s.logger.Info("no sales history for item", "item_id", req.ItemID, "records", len(records))
		return res, nil
	}
	s.logger.Debug("series normalized", "item_id", req.ItemID, "days", len(series),
		"first", series[0].Date.Format(dateLayout), "last", series[len(series)-1].Date.Format(dateLayout))

	model, err := s.newModel()
	if err != nil {
		return Response{}, apperrors.Wrap(apperrors.CodeForecastFailed, "failed to build forecast model", err)
	}

	fitStart := time.Now()
	points, err := Predict(model, series, horizon, today)
	s.metrics.ObserveFit(len(series), time.Since(fitStart))
	if err != nil {
		s.logger.Error("forecast failed", "item_id", req.ItemID, "days", len(series), "error", err)
		return Response{}, apperrors.Wrap(apperrors.CodeForecastFailed, "failed to forecast demand", err)
	}

	res.Points = FormatPoints(points)
	s.logger.Info("forecast generated", "item_id", req.ItemID, "horizon", horizon, "points", len(res.Points))
	return res, nil
}

func (s *service) resolveHorizon(days *int) (int, error) {
	if days == nil {
		return s.cfg.DefaultHorizon, nil
	}
	if *days < 1 {
		return 0, apperrors.Wrap(apperrors.CodeInvalidInput, "days must be at least 1", nil)
	}
	if s.cfg.MaxHorizon > 0 && *days > s.cfg.MaxHorizon {
		return 0, apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("days cannot exceed %d", s.cfg.MaxHorizon), nil)
	}
	return *days, nil
}
