package forecast

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/smartcafe/demand-forecast/internal/infra/seasonal"
	apperrors "github.com/smartcafe/demand-forecast/pkg/errors"
	"github.com/smartcafe/demand-forecast/pkg/metrics"
)

func TestServiceForecastSparseHistory(t *testing.T) {
	source := &stubSource{records: []SalesRecord{
		{MenuItemID: 1, Date: day("2024-01-01"), Quantity: 5},
		{MenuItemID: 1, Date: day("2024-01-03"), Quantity: 2},
	}}
	svc := newServiceUnderTest(source, seasonalFactory(), time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC))

	days := 2
	resp, err := svc.Forecast(context.Background(), Request{ItemID: 1, Days: &days})
	require.NoError(t, err)
	require.Equal(t, 1, source.calls)
	require.Equal(t, "2024-01-10", resp.Today)
	require.Equal(t, 2, resp.Horizon)
	require.Len(t, resp.Points, 2)
	require.Equal(t, "2024-01-11", resp.Points[0].Date)
	require.Equal(t, "2024-01-12", resp.Points[1].Date)
	for _, p := range resp.Points {
		require.GreaterOrEqual(t, p.Quantity, 0)
		require.GreaterOrEqual(t, p.Lower, 0)
		require.GreaterOrEqual(t, p.Upper, p.Lower)
	}
}

func TestServiceForecastDefaultHorizon(t *testing.T) {
	source := &stubSource{records: []SalesRecord{
		{MenuItemID: 3, Date: day("2024-05-01"), Quantity: 4},
		{MenuItemID: 3, Date: day("2024-05-20"), Quantity: 6},
	}}
	svc := newServiceUnderTest(source, seasonalFactory(), time.Date(2024, 5, 20, 8, 0, 0, 0, time.UTC))

	resp, err := svc.Forecast(context.Background(), Request{ItemID: 3})
	require.NoError(t, err)
	require.Equal(t, 7, resp.Horizon)
	require.Len(t, resp.Points, 7)
	require.Equal(t, "2024-05-21", resp.Points[0].Date)
	require.Equal(t, "2024-05-27", resp.Points[6].Date)
}

func TestServiceForecastUnknownItemSkipsModel(t *testing.T) {
	source := &stubSource{records: []SalesRecord{{MenuItemID: 2, Date: day("2024-01-01"), Quantity: 1}}}
	factoryCalls := 0
	factory := func() (Model, error) {
		factoryCalls++
		return &indexModel{}, nil
	}
	svc := newServiceUnderTest(source, factory, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))

	resp, err := svc.Forecast(context.Background(), Request{ItemID: 1})
	require.NoError(t, err)
	require.NotNil(t, resp.Points)
	require.Empty(t, resp.Points)
	require.Zero(t, factoryCalls)
}

func TestServiceForecastFetchFailure(t *testing.T) {
	source := &stubSource{err: errors.New("dial tcp: i/o timeout")}
	svc := newServiceUnderTest(source, seasonalFactory(), time.Now())

	_, err := svc.Forecast(context.Background(), Request{ItemID: 1})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeSalesFetchFailed))
	require.EqualError(t, apperrors.Cause(err), "dial tcp: i/o timeout")
}

func TestServiceForecastInvalidDays(t *testing.T) {
	svc := newServiceUnderTest(&stubSource{}, seasonalFactory(), time.Now())

	for _, days := range []int{0, -3, 400} {
		d := days
		_, err := svc.Forecast(context.Background(), Request{ItemID: 1, Days: &d})
		require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput), "days=%d", days)
	}
}

func TestServiceForecastModelFailure(t *testing.T) {
	source := &stubSource{records: []SalesRecord{{MenuItemID: 1, Date: day("2024-01-01"), Quantity: 1}}}
	factory := func() (Model, error) { return &indexModel{fitErr: seasonal.ErrInsufficientTrainingData}, nil }
	svc := newServiceUnderTest(source, factory, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	_, err := svc.Forecast(context.Background(), Request{ItemID: 1})
	require.True(t, apperrors.IsCode(err, apperrors.CodeForecastFailed))
	require.ErrorIs(t, err, seasonal.ErrInsufficientTrainingData)
}

func TestServiceForecastClampsNegativeEstimates(t *testing.T) {
	source := &stubSource{records: []SalesRecord{{MenuItemID: 1, Date: day("2024-01-01"), Quantity: 1}}}
	factory := func() (Model, error) { return &negativeModel{}, nil }
	svc := newServiceUnderTest(source, factory, time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC))

	days := 3
	resp, err := svc.Forecast(context.Background(), Request{ItemID: 1, Days: &days})
	require.NoError(t, err)
	require.Len(t, resp.Points, 3)
	for _, p := range resp.Points {
		require.Zero(t, p.Quantity)
	}
}

func TestServiceForecastUsesConfiguredTimezone(t *testing.T) {
	source := &stubSource{records: []SalesRecord{{MenuItemID: 1, Date: day("2024-01-01"), Quantity: 1}}}
	svc := newServiceUnderTest(source, func() (Model, error) { return &indexModel{}, nil }, time.Date(2024, 1, 4, 20, 0, 0, 0, time.UTC))
	svc.cfg.Location = time.FixedZone("UTC+8", 8*60*60)

	days := 1
	resp, err := svc.Forecast(context.Background(), Request{ItemID: 1, Days: &days})
	require.NoError(t, err)
	require.Equal(t, "2024-01-05", resp.Today)
	require.Equal(t, "2024-01-06", resp.Points[0].Date)
}

type stubSource struct {
	records []SalesRecord
	err     error
	calls   int
}

func (s *stubSource) FetchSalesHistory(ctx context.Context) ([]SalesRecord, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

type negativeModel struct{}

func (negativeModel) Fit(t []time.Time, y []float64) error { return nil }

func (negativeModel) Predict(t []time.Time) (seasonal.Results, error) {
	res := seasonal.Results{T: t}
	for range t {
		res.Forecast = append(res.Forecast, -2.5)
		res.Lower = append(res.Lower, -6)
		res.Upper = append(res.Upper, 1)
	}
	return res, nil
}

func seasonalFactory() ModelFactory {
	return func() (Model, error) { return seasonal.New(nil) }
}

func newServiceUnderTest(source SalesSource, factory ModelFactory, now time.Time) *service {
	return &service{
		cfg: Config{
			DefaultHorizon: 7,
			MaxHorizon:     365,
			Location:       time.UTC,
		},
		source:   source,
		newModel: factory,
		metrics:  metrics.New(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      func() time.Time { return now },
	}
}
