package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultSalesURL = "https://smartcafebackend.azurewebsites.net/api/analytics/sales-history"

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Sales    SalesConfig    `yaml:"sales"`
	Forecast ForecastConfig `yaml:"forecast"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string        `yaml:"address"`
	ReadTimeout    time.Duration `yaml:"readTimeout"`
	WriteTimeout   time.Duration `yaml:"writeTimeout"`
	AllowedOrigins []string      `yaml:"allowedOrigins"`
}

// SalesConfig points at the backend that owns the sales history.
type SalesConfig struct {
	BaseURL      string        `yaml:"baseUrl"`
	Timeout      time.Duration `yaml:"timeout"`
	MaxBodyBytes int64         `yaml:"maxBodyBytes"`
	TLS          TLSConfig     `yaml:"tls"`
}

// TLSConfig controls certificate validation for the sales backend.
type TLSConfig struct {
	InsecureSkipVerify bool   `yaml:"insecureSkipVerify"`
	CAFile             string `yaml:"caFile"`
}

// ForecastConfig drives horizon limits and the seasonal model.
type ForecastConfig struct {
	DefaultHorizon    int     `yaml:"defaultHorizon"`
	MaxHorizon        int     `yaml:"maxHorizon"`
	Timezone          string  `yaml:"timezone"`
	Changepoints      int     `yaml:"changepoints"`
	WeeklySeasonality string  `yaml:"weeklySeasonality"`
	YearlySeasonality string  `yaml:"yearlySeasonality"`
	Holidays          string  `yaml:"holidays"`
	IntervalWidth     float64 `yaml:"intervalWidth"`
	Regularization    float64 `yaml:"regularization"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("SALES_BASE_URL"); v != "" {
		cfg.Sales.BaseURL = v
	}
	if v := os.Getenv("SALES_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Sales.Timeout = parsed
		}
	}
	if v := os.Getenv("SALES_INSECURE_SKIP_VERIFY"); v != "" {
		cfg.Sales.TLS.InsecureSkipVerify = parseBool(v)
	}
	if v := os.Getenv("SALES_CA_FILE"); v != "" {
		cfg.Sales.TLS.CAFile = v
	}
	if v := os.Getenv("FORECAST_DEFAULT_HORIZON"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Forecast.DefaultHorizon = parsed
		}
	}
	if v := os.Getenv("FORECAST_MAX_HORIZON"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Forecast.MaxHorizon = parsed
		}
	}
	if v := os.Getenv("FORECAST_TIMEZONE"); v != "" {
		cfg.Forecast.Timezone = v
	}
	if v := os.Getenv("FORECAST_HOLIDAYS"); v != "" {
		cfg.Forecast.Holidays = v
	}
	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		cfg.Metrics.Enabled = parseBool(v)
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8000",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
		Sales: SalesConfig{
			BaseURL:      defaultSalesURL,
			Timeout:      30 * time.Second,
			MaxBodyBytes: 32 << 20,
		},
		Forecast: ForecastConfig{
			DefaultHorizon:    7,
			MaxHorizon:        365,
			Timezone:          "UTC",
			Changepoints:      10,
			WeeklySeasonality: "auto",
			YearlySeasonality: "auto",
			IntervalWidth:     0.8,
			Regularization:    0.1,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if strings.TrimSpace(c.Sales.BaseURL) == "" {
		return errors.New("sales.baseUrl cannot be empty")
	}
	if c.Sales.Timeout < 0 {
		return errors.New("sales.timeout cannot be negative")
	}
	if c.Sales.MaxBodyBytes <= 0 {
		return errors.New("sales.maxBodyBytes must be positive")
	}
	if c.Forecast.DefaultHorizon <= 0 {
		return errors.New("forecast.defaultHorizon must be positive")
	}
	if c.Forecast.MaxHorizon < c.Forecast.DefaultHorizon {
		return errors.New("forecast.maxHorizon must be at least forecast.defaultHorizon")
	}
	if _, err := time.LoadLocation(c.Forecast.Timezone); err != nil {
		return fmt.Errorf("forecast.timezone: %w", err)
	}
	if c.Forecast.Changepoints < 0 {
		return errors.New("forecast.changepoints cannot be negative")
	}
	for name, mode := range map[string]string{
		"forecast.weeklySeasonality": c.Forecast.WeeklySeasonality,
		"forecast.yearlySeasonality": c.Forecast.YearlySeasonality,
	} {
		switch strings.ToLower(mode) {
		case "auto", "on", "off":
		default:
			return fmt.Errorf("%s must be one of auto, on, off", name)
		}
	}
	if c.Forecast.IntervalWidth <= 0 || c.Forecast.IntervalWidth >= 1 {
		return errors.New("forecast.intervalWidth must be between 0 and 1")
	}
	if c.Forecast.Regularization <= 0 {
		return errors.New("forecast.regularization must be positive")
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return errors.New("metrics.path must start with /")
	}
	return nil
}
