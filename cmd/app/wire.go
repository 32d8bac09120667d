//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/smartcafe/demand-forecast/internal/bootstrap"
	"github.com/smartcafe/demand-forecast/internal/domain/forecast"
	"github.com/smartcafe/demand-forecast/internal/infra/config"
	"github.com/smartcafe/demand-forecast/internal/infra/sales"
	httpiface "github.com/smartcafe/demand-forecast/internal/interface/http"
	"github.com/smartcafe/demand-forecast/pkg/logger"
	"github.com/smartcafe/demand-forecast/pkg/metrics"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		metrics.New,
		provideForecastConfig,
		provideSalesClient,
		provideSeasonalOptions,
		provideModelFactory,
		forecast.NewService,
		wire.Bind(new(forecast.SalesSource), new(*sales.Client)),
		httpiface.NewForecastHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
