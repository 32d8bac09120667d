package forecast

import (
	"time"

	"github.com/smartcafe/demand-forecast/internal/infra/seasonal"
)

// SalesRecord is one row of the upstream sales history.
type SalesRecord struct {
	MenuItemID int
	Date       time.Time
	Quantity   int
}

// DailyPoint is the quantity sold on one calendar day.
type DailyPoint struct {
	Date     time.Time
	Quantity float64
}

// Series is a gap-free, strictly increasing run of DailyPoints for one item.
type Series []DailyPoint

// Arrays splits the series into parallel time and value slices.
func (s Series) Arrays() ([]time.Time, []float64) {
	t := make([]time.Time, len(s))
	y := make([]float64, len(s))
	for i, p := range s {
		t[i] = p.Date
		y[i] = p.Quantity
	}
	return t, y
}

// Point is a model estimate for one future day.
type Point struct {
	Date     time.Time
	Estimate float64
	Lower    float64
	Upper    float64
}

// Record is the formatted, client-facing form of a Point.
type Record struct {
	Date     string `json:"date"`
	Quantity int    `json:"quantity"`
	Lower    int    `json:"lower"`
	Upper    int    `json:"upper"`
}

// Request identifies the item and horizon to forecast. A nil Days uses the
// configured default horizon.
type Request struct {
	ItemID int
	Days   *int
}

// Response is the outcome of a successful forecast.
type Response struct {
	ItemID  int      `json:"itemId"`
	Horizon int      `json:"horizon"`
	Today   string   `json:"today"`
	Points  []Record `json:"points"`
}

// Config wires runtime limits for the forecast domain.
type Config struct {
	DefaultHorizon int
	MaxHorizon     int
	Location       *time.Location
}

// Model is the statistical capability the pipeline delegates to.
type Model interface {
	Fit(t []time.Time, y []float64) error
	Predict(t []time.Time) (seasonal.Results, error)
}

// ModelFactory builds a fresh, untrained Model for each request.
type ModelFactory func() (Model, error)
