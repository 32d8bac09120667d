package forecast

import (
	"fmt"
	"time"

	"github.com/smartcafe/demand-forecast/internal/infra/seasonal"
)

// Predict fits model on the whole series, predicts horizon days past the last
// historical day and returns at most horizon points dated strictly after today.
// The series must not be empty.
func Predict(model Model, series Series, horizon int, today time.Time) ([]Point, error) {
	t, y := series.Arrays()
	if err := model.Fit(t, y); err != nil {
		return nil, fmt.Errorf("fit model: %w", err)
	}

	all := make([]time.Time, 0, len(t)+horizon)
	all = append(all, t...)
	all = append(all, seasonal.FutureDates(t[len(t)-1], horizon)...)
	res, err := model.Predict(all)
	if err != nil {
		return nil, fmt.Errorf("predict horizon: %w", err)
	}
	if len(res.Forecast) != len(all) {
		return nil, fmt.Errorf("model returned %d estimates for %d dates", len(res.Forecast), len(all))
	}

	points := make([]Point, 0, horizon)
	for i, ts := range all {
		if !ts.After(today) {
			continue
		}
		points = append(points, Point{
			Date:     ts,
			Estimate: res.Forecast[i],
			Lower:    valueAt(res.Lower, i, res.Forecast[i]),
			Upper:    valueAt(res.Upper, i, res.Forecast[i]),
		})
		if len(points) == horizon {
			break
		}
	}
	return points, nil
}

func valueAt(values []float64, i int, fallback float64) float64 {
	if i < len(values) {
		return values[i]
	}
	return fallback
}
