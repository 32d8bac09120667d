package seasonal

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func dailyTimes(start time.Time, n int) []time.Time {
	t := make([]time.Time, n)
	for i := range t {
		t[i] = start.AddDate(0, 0, i)
	}
	return t
}

func TestFitLinearTrend(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	times := dailyTimes(start, 60)
	y := make([]float64, len(times))
	for i := range y {
		y[i] = 2 + 0.5*float64(i)
	}

	opt := NewDefaultOptions()
	opt.Regularization = 1e-8
	m, err := New(opt)
	require.NoError(t, err)
	require.NoError(t, m.Fit(times, y))

	future := FutureDates(times[len(times)-1], 7)
	res, err := m.Predict(future)
	require.NoError(t, err)
	require.Len(t, res.Forecast, 7)
	for i, v := range res.Forecast {
		expected := 2 + 0.5*float64(60+i)
		require.InDelta(t, expected, v, 0.05, "day %d", i)
	}
}

func TestFitWeeklyPattern(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) // Monday
	times := dailyTimes(start, 8*7)
	y := make([]float64, len(times))
	for i, ts := range times {
		y[i] = 10
		if ts.Weekday() == time.Saturday || ts.Weekday() == time.Sunday {
			y[i] = 25
		}
	}

	m, err := New(nil)
	require.NoError(t, err)
	require.NoError(t, m.Fit(times, y))

	res, err := m.Predict(FutureDates(times[len(times)-1], 7))
	require.NoError(t, err)

	var weekend, weekday []float64
	for i, ts := range res.T {
		if ts.Weekday() == time.Saturday || ts.Weekday() == time.Sunday {
			weekend = append(weekend, res.Forecast[i])
		} else {
			weekday = append(weekday, res.Forecast[i])
		}
	}
	require.Len(t, weekend, 2)
	for _, we := range weekend {
		for _, wd := range weekday {
			require.Greater(t, we, wd)
		}
	}
}

func TestPredictBandsContainEstimate(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	times := dailyTimes(start, 30)
	y := make([]float64, len(times))
	for i := range y {
		y[i] = 5 + float64(i%3)
	}

	m, err := New(nil)
	require.NoError(t, err)
	require.NoError(t, m.Fit(times, y))
	require.Len(t, m.Residuals(), 30)

	res, err := m.Predict(append(times, FutureDates(times[len(times)-1], 3)...))
	require.NoError(t, err)
	for i := range res.T {
		require.GreaterOrEqual(t, res.Upper[i], res.Forecast[i])
		require.LessOrEqual(t, res.Lower[i], res.Forecast[i])
	}
}

func TestFitConstantZeroSeries(t *testing.T) {
	times := dailyTimes(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), 20)
	y := make([]float64, len(times))

	m, err := New(nil)
	require.NoError(t, err)
	require.NoError(t, m.Fit(times, y))

	res, err := m.Predict(FutureDates(times[len(times)-1], 2))
	require.NoError(t, err)
	for _, v := range res.Forecast {
		require.False(t, math.IsNaN(v))
		require.InDelta(t, 0, v, 1e-9)
	}
}

func TestFitErrors(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	m, err := New(nil)
	require.NoError(t, err)

	require.ErrorIs(t, m.Fit(dailyTimes(start, 3), []float64{1, 2}), ErrMismatchedDataLen)
	require.ErrorIs(t, m.Fit(dailyTimes(start, 1), []float64{1}), ErrInsufficientTrainingData)
	require.ErrorIs(t, m.Fit(dailyTimes(start, 2), []float64{1, math.NaN()}), ErrInsufficientTrainingData)

	unsorted := []time.Time{start.AddDate(0, 0, 1), start}
	require.ErrorIs(t, m.Fit(unsorted, []float64{1, 2}), ErrUnsortedTime)

	_, err = m.Predict([]time.Time{start})
	require.ErrorIs(t, err, ErrUntrainedModel)
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	opt := NewDefaultOptions()
	opt.IntervalWidth = 1.5
	_, err := New(opt)
	require.ErrorIs(t, err, ErrInvalidOptions)
}

func TestFitTwoPoints(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m, err := New(nil)
	require.NoError(t, err)
	require.NoError(t, m.Fit(dailyTimes(start, 2), []float64{4, 6}))
	require.Equal(t, 2, m.NumFeatures())

	res, err := m.Predict(FutureDates(start.AddDate(0, 0, 1), 1))
	require.NoError(t, err)
	require.False(t, math.IsNaN(res.Forecast[0]))
}

func TestFutureDates(t *testing.T) {
	last := time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)
	dates := FutureDates(last, 3)
	require.Equal(t, []time.Time{
		time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
	}, dates)
	require.Nil(t, FutureDates(last, 0))
}

func TestParseMode(t *testing.T) {
	mode, err := ParseMode("ON")
	require.NoError(t, err)
	require.Equal(t, ModeOn, mode)

	mode, err = ParseMode("")
	require.NoError(t, err)
	require.Equal(t, ModeAuto, mode)

	_, err = ParseMode("maybe")
	require.ErrorIs(t, err, ErrInvalidOptions)
}
