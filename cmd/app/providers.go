package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/smartcafe/demand-forecast/internal/domain/forecast"
	"github.com/smartcafe/demand-forecast/internal/infra/config"
	"github.com/smartcafe/demand-forecast/internal/infra/sales"
	"github.com/smartcafe/demand-forecast/internal/infra/seasonal"
)

func provideForecastConfig(cfg *config.Config) (forecast.Config, error) {
	loc, err := time.LoadLocation(cfg.Forecast.Timezone)
	if err != nil {
		return forecast.Config{}, fmt.Errorf("load forecast timezone: %w", err)
	}
	return forecast.Config{
		DefaultHorizon: cfg.Forecast.DefaultHorizon,
		MaxHorizon:     cfg.Forecast.MaxHorizon,
		Location:       loc,
	}, nil
}

func provideSalesClient(cfg *config.Config, logger *slog.Logger) (*sales.Client, error) {
	if cfg.Sales.TLS.InsecureSkipVerify {
		logger.Warn("tls certificate verification disabled for sales backend", "url", cfg.Sales.BaseURL)
	}
	return sales.NewClient(sales.Options{
		BaseURL:            cfg.Sales.BaseURL,
		Timeout:            cfg.Sales.Timeout,
		MaxBodyBytes:       cfg.Sales.MaxBodyBytes,
		InsecureSkipVerify: cfg.Sales.TLS.InsecureSkipVerify,
		CAFile:             cfg.Sales.TLS.CAFile,
	})
}

func provideSeasonalOptions(cfg *config.Config) (*seasonal.Options, error) {
	weekly, err := seasonal.ParseMode(cfg.Forecast.WeeklySeasonality)
	if err != nil {
		return nil, fmt.Errorf("forecast.weeklySeasonality: %w", err)
	}
	yearly, err := seasonal.ParseMode(cfg.Forecast.YearlySeasonality)
	if err != nil {
		return nil, fmt.Errorf("forecast.yearlySeasonality: %w", err)
	}
	holidays, err := seasonal.HolidayCalendar(cfg.Forecast.Holidays)
	if err != nil {
		return nil, fmt.Errorf("forecast.holidays: %w", err)
	}

	opt := seasonal.NewDefaultOptions()
	opt.Changepoints = cfg.Forecast.Changepoints
	opt.Weekly = weekly
	opt.Yearly = yearly
	opt.Holidays = holidays
	opt.IntervalWidth = cfg.Forecast.IntervalWidth
	opt.Regularization = cfg.Forecast.Regularization
	return opt, nil
}

func provideModelFactory(opt *seasonal.Options) forecast.ModelFactory {
	return func() (forecast.Model, error) {
		perFit := *opt
		return seasonal.New(&perFit)
	}
}
